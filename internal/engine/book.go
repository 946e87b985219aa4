package engine

import (
	"time"

	"matchbook/internal/domain"
)

// MarketRemainderPolicy controls what happens to the unfilled part of
// a market order once the opposite side is exhausted.
type MarketRemainderPolicy string

const (
	// MarketRemainderDrop silently discards the unfilled remainder;
	// the order partially fills and the rest is treated as cancelled.
	MarketRemainderDrop MarketRemainderPolicy = "drop"
	// MarketRemainderReject refuses the whole submission with
	// domain.ErrNoLiquidity unless the opposite side can fill it
	// completely. Nothing is mutated on rejection.
	MarketRemainderReject MarketRemainderPolicy = "reject"
)

// Options configures a Book.
type Options struct {
	MarketRemainder MarketRemainderPolicy
}

// Book is the order book for a single instrument: two price-indexed
// sides, per-price FIFO queues, and an order index for O(1)
// cancellation. A Book is driven by a single goroutine and does no
// internal locking; callers needing concurrent submission must
// serialize externally. Separate instruments get separate Books.
type Book struct {
	bids  *sideBook
	asks  *sideBook
	index map[uint64]*bookEntry

	nextSeq uint64
	policy  MarketRemainderPolicy

	bidOrders int
	askOrders int
}

// NewBook creates an empty book. The sequence counter starts at 1 and
// is never reset.
func NewBook(opts Options) *Book {
	policy := opts.MarketRemainder
	if policy == "" {
		policy = MarketRemainderDrop
	}
	return &Book{
		bids:    newSideBook(bidLevelLess),
		asks:    newSideBook(askLevelLess),
		index:   make(map[uint64]*bookEntry),
		nextSeq: 1,
		policy:  policy,
	}
}

// AddLimit submits a limit order. It validates input, matches the
// order against the opposite side, and rests any unfilled remainder.
// The returned trades are in generation order, earliest fill first.
func (b *Book) AddLimit(id uint64, side domain.Side, price, qty int64) ([]domain.Trade, error) {
	if id == 0 {
		return nil, domain.ErrInvalidOrderID
	}
	if qty <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if price <= 0 {
		return nil, domain.ErrInvalidPrice
	}
	if _, ok := b.index[id]; ok {
		return nil, domain.ErrDuplicateOrderID
	}

	order := &domain.Order{
		ID:                id,
		Type:              domain.OrderTypeLimit,
		Side:              side,
		Price:             price,
		Quantity:          qty,
		RemainingQuantity: qty,
		Seq:               b.nextSeq,
		Status:            domain.OrderStatusPending,
		CreatedAt:         time.Now(),
	}
	b.nextSeq++

	trades := b.matchIncoming(order)

	if order.RemainingQuantity > 0 {
		b.rest(order)
	}
	return trades, nil
}

// AddMarket submits a market order: a limit order with no price
// bound. It never rests and never enters the index; remainder
// handling follows the configured policy.
func (b *Book) AddMarket(id uint64, side domain.Side, qty int64) ([]domain.Trade, error) {
	if id == 0 {
		return nil, domain.ErrInvalidOrderID
	}
	if qty <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if _, ok := b.index[id]; ok {
		return nil, domain.ErrDuplicateOrderID
	}

	if b.policy == MarketRemainderReject {
		if quote := b.Quote(side, qty); !quote.FullyFillable {
			return nil, domain.ErrNoLiquidity
		}
	}

	order := &domain.Order{
		ID:                id,
		Type:              domain.OrderTypeMarket,
		Side:              side,
		Quantity:          qty,
		RemainingQuantity: qty,
		Seq:               b.nextSeq,
		Status:            domain.OrderStatusPending,
		CreatedAt:         time.Now(),
	}
	b.nextSeq++

	trades := b.matchIncoming(order)

	// IOC semantics: the unfilled remainder is dropped, never rested.
	if order.RemainingQuantity > 0 {
		order.CancelledQuantity = order.RemainingQuantity
		order.RemainingQuantity = 0
		order.Status = domain.OrderStatusCancelled
	}
	return trades, nil
}

// Cancel removes a resting order. It returns false when the ID is not
// resting, which covers unknown, already filled, and already cancelled
// orders alike.
func (b *Book) Cancel(id uint64) bool {
	e, ok := b.index[id]
	if !ok {
		return false
	}
	b.remove(e)
	e.order.CancelledQuantity = e.order.RemainingQuantity
	e.order.RemainingQuantity = 0
	e.order.Status = domain.OrderStatusCancelled
	return true
}

// BestBid returns the highest resting bid price.
func (b *Book) BestBid() (int64, bool) {
	lvl, ok := b.bids.best()
	if !ok {
		return 0, false
	}
	return lvl.price, true
}

// BestAsk returns the lowest resting ask price.
func (b *Book) BestAsk() (int64, bool) {
	lvl, ok := b.asks.best()
	if !ok {
		return 0, false
	}
	return lvl.price, true
}

// BidCount returns the number of resting buy orders.
func (b *Book) BidCount() int {
	return b.bidOrders
}

// AskCount returns the number of resting sell orders.
func (b *Book) AskCount() int {
	return b.askOrders
}

// Len returns the total number of resting orders.
func (b *Book) Len() int {
	return len(b.index)
}

// Empty reports whether both sides are empty.
func (b *Book) Empty() bool {
	return len(b.index) == 0
}

// Resting returns the order resting under id, if any. The returned
// order must not be mutated by the caller.
func (b *Book) Resting(id uint64) (*domain.Order, bool) {
	e, ok := b.index[id]
	if !ok {
		return nil, false
	}
	return e.order, true
}

func (b *Book) sideOf(s domain.Side) *sideBook {
	if s == domain.SideBuy {
		return b.bids
	}
	return b.asks
}

// rest inserts a limit order's remainder into its side book and the
// order index as one logical step. This is the only insertion path.
func (b *Book) rest(order *domain.Order) {
	e := &bookEntry{order: order}
	b.sideOf(order.Side).upsert(order.Price).enqueue(e)
	b.index[order.ID] = e
	if order.Side == domain.SideBuy {
		b.bidOrders++
	} else {
		b.askOrders++
	}
}

// remove unlinks a resting entry from its level and erases it from
// the index as one logical step, dropping the level if it empties.
// This is the only removal path.
func (b *Book) remove(e *bookEntry) {
	lvl := e.level
	lvl.unlink(e)
	delete(b.index, e.order.ID)
	if lvl.orderCount == 0 {
		b.sideOf(e.order.Side).erase(lvl)
	}
	if e.order.Side == domain.SideBuy {
		b.bidOrders--
	} else {
		b.askOrders--
	}
}
