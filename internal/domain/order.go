package domain

import (
	"fmt"
	"strings"
	"time"
)

// OrderType distinguishes limit orders from market orders. A market
// order carries no price bound; its Price field is meaningless and
// the matcher never reads it.
type OrderType string

const (
	OrderTypeLimit  OrderType = "limit"
	OrderTypeMarket OrderType = "market"
)

// Side indicates whether an order buys or sells.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// ParseSide parses a textual side, accepting any casing of
// "buy"/"bid" and "sell"/"ask".
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(s) {
	case "buy", "bid":
		return SideBuy, nil
	case "sell", "ask":
		return SideSell, nil
	}
	return "", fmt.Errorf("invalid side: %q", s)
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending         OrderStatus = "pending"
	OrderStatusPartiallyFilled OrderStatus = "partially_filled"
	OrderStatusFilled          OrderStatus = "filled"
	OrderStatusCancelled       OrderStatus = "cancelled"
)

// Order is one buy or sell instruction. The ID is assigned by the
// caller; Seq is assigned by the book on acceptance and is strictly
// increasing across both sides, breaking ties by arrival order.
// RemainingQuantity is mutated in place as matching consumes it.
type Order struct {
	ID                uint64
	Type              OrderType
	Side              Side
	Price             int64 // ticks, limit orders only
	Quantity          int64
	FilledQuantity    int64
	RemainingQuantity int64
	CancelledQuantity int64
	Seq               uint64
	Status            OrderStatus
	CreatedAt         time.Time
}
