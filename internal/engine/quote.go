package engine

import "matchbook/internal/domain"

// LevelSummary is one aggregated price level as reported by the
// depth queries.
type LevelSummary struct {
	Price         int64
	TotalQuantity int64
	OrderCount    int
}

// TopBids returns up to n aggregated bid levels, best first.
func (b *Book) TopBids(n int) []LevelSummary {
	return topLevels(b.bids, n)
}

// TopAsks returns up to n aggregated ask levels, best first.
func (b *Book) TopAsks(n int) []LevelSummary {
	return topLevels(b.asks, n)
}

func topLevels(s *sideBook, n int) []LevelSummary {
	if n <= 0 {
		return nil
	}
	levels := make([]LevelSummary, 0, n)
	s.walk(func(lvl *priceLevel) bool {
		if len(levels) >= n {
			return false
		}
		levels = append(levels, LevelSummary{
			Price:         lvl.price,
			TotalQuantity: lvl.totalQty,
			OrderCount:    lvl.orderCount,
		})
		return true
	})
	return levels
}

// QuoteLevel is a single price level in a quote simulation.
type QuoteLevel struct {
	Price    int64
	Quantity int64
}

// QuoteResult holds the result of a market order simulation.
type QuoteResult struct {
	QuantityAvailable int64
	FullyFillable     bool
	EstimatedAvgPrice *int64 // nil when no liquidity
	EstimatedTotal    *int64 // nil when no liquidity
	PriceLevels       []QuoteLevel
}

// Quote performs a read-only walk of the opposite side to estimate
// the outcome of a market order of the given size without placing
// it. The reject remainder policy uses it as its pre-check.
func (b *Book) Quote(side domain.Side, quantity int64) *QuoteResult {
	opposite := b.asks
	if side == domain.SideSell {
		opposite = b.bids
	}

	result := &QuoteResult{
		PriceLevels: make([]QuoteLevel, 0),
	}

	remaining := quantity
	var totalCost int64

	opposite.walk(func(lvl *priceLevel) bool {
		if remaining <= 0 {
			return false
		}
		fill := lvl.totalQty
		if fill > remaining {
			fill = remaining
		}
		totalCost += lvl.price * fill
		result.QuantityAvailable += fill
		remaining -= fill
		result.PriceLevels = append(result.PriceLevels, QuoteLevel{
			Price:    lvl.price,
			Quantity: fill,
		})
		return remaining > 0
	})

	if result.QuantityAvailable > 0 {
		avgPrice := totalCost / result.QuantityAvailable
		result.EstimatedAvgPrice = &avgPrice
		result.EstimatedTotal = &totalCost
	}
	result.FullyFillable = result.QuantityAvailable >= quantity

	return result
}
