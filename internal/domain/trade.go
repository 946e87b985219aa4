package domain

import "time"

// Trade is an immutable execution record produced by the matching
// loop. Price is always the resting (maker) order's level price,
// never the aggressor's limit.
type Trade struct {
	TradeID     string
	Price       int64
	Quantity    int64
	BuyOrderID  uint64
	SellOrderID uint64
	ExecutedAt  time.Time
}
