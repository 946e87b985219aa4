package engine

import (
	"time"

	"github.com/google/uuid"

	"matchbook/internal/domain"
)

// matchIncoming crosses the aggressor against the opposite side:
// best price first, FIFO within a level. It mutates the incoming
// order's remaining quantity and returns the trades in the order they
// were generated.
func (b *Book) matchIncoming(incoming *domain.Order) []domain.Trade {
	opposite := b.asks
	if incoming.Side == domain.SideSell {
		opposite = b.bids
	}

	executedAt := time.Now()
	var trades []domain.Trade

	for incoming.RemainingQuantity > 0 {
		lvl, ok := opposite.best()
		if !ok {
			break
		}
		// Price ordering guarantees every worse level also fails to
		// cross, so a single check per level suffices.
		if incoming.Type == domain.OrderTypeLimit && !crosses(incoming, lvl.price) {
			break
		}

		for incoming.RemainingQuantity > 0 && lvl.head != nil {
			entry := lvl.head
			resting := entry.order

			fill := incoming.RemainingQuantity
			if resting.RemainingQuantity < fill {
				fill = resting.RemainingQuantity
			}

			incoming.RemainingQuantity -= fill
			incoming.FilledQuantity += fill
			resting.RemainingQuantity -= fill
			resting.FilledQuantity += fill
			lvl.totalQty -= fill

			if incoming.RemainingQuantity == 0 {
				incoming.Status = domain.OrderStatusFilled
			} else {
				incoming.Status = domain.OrderStatusPartiallyFilled
			}
			if resting.RemainingQuantity == 0 {
				resting.Status = domain.OrderStatusFilled
			} else {
				resting.Status = domain.OrderStatusPartiallyFilled
			}

			buyID, sellID := incoming.ID, resting.ID
			if incoming.Side == domain.SideSell {
				buyID, sellID = resting.ID, incoming.ID
			}

			trades = append(trades, domain.Trade{
				TradeID:     uuid.New().String(),
				Price:       lvl.price, // maker price
				Quantity:    fill,
				BuyOrderID:  buyID,
				SellOrderID: sellID,
				ExecutedAt:  executedAt,
			})

			// A fully consumed resting order leaves the level and the
			// index in one step; remove also erases the level when
			// this was its last entry, advancing the outer loop to
			// the next best level.
			if resting.RemainingQuantity == 0 {
				b.remove(entry)
			}
		}
	}

	return trades
}

// crosses reports whether a limit aggressor can legally trade at the
// given opposite-side level price.
func crosses(incoming *domain.Order, levelPrice int64) bool {
	if incoming.Side == domain.SideBuy {
		return levelPrice <= incoming.Price
	}
	return levelPrice >= incoming.Price
}
