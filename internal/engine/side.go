package engine

import (
	"github.com/google/btree"

	"matchbook/internal/domain"
)

// bookEntry is one resting order's node in its price level's FIFO
// queue. The order index holds entries directly, so cancellation and
// fill removal unlink in O(1) without scanning the level.
type bookEntry struct {
	order *domain.Order
	level *priceLevel
	prev  *bookEntry
	next  *bookEntry
}

// priceLevel holds the FIFO queue of orders resting at one price.
// A level present in a side book is never empty: the side book
// erases it the moment its last entry leaves.
type priceLevel struct {
	price      int64
	head       *bookEntry
	tail       *bookEntry
	totalQty   int64
	orderCount int
}

// enqueue appends an entry at the tail, preserving arrival order.
func (l *priceLevel) enqueue(e *bookEntry) {
	e.level = l
	if l.head == nil {
		l.head = e
		l.tail = e
	} else {
		l.tail.next = e
		e.prev = l.tail
		l.tail = e
	}
	l.totalQty += e.order.RemainingQuantity
	l.orderCount++
}

// unlink removes an entry from anywhere in the queue. The caller is
// responsible for erasing the level from its side book once
// orderCount reaches zero.
func (l *priceLevel) unlink(e *bookEntry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.tail = e.prev
	}
	e.prev = nil
	e.next = nil
	e.level = nil
	l.totalQty -= e.order.RemainingQuantity
	l.orderCount--
}

// bidLevelLess orders bid levels price-descending so Min() is the
// best bid (highest price).
func bidLevelLess(a, b *priceLevel) bool {
	return a.price > b.price
}

// askLevelLess orders ask levels price-ascending so Min() is the
// best ask (lowest price).
func askLevelLess(a, b *priceLevel) bool {
	return a.price < b.price
}

// sideBook is the ordered collection of price levels for one side,
// backed by a B-tree keyed on price.
type sideBook struct {
	levels *btree.BTreeG[*priceLevel]
}

func newSideBook(less btree.LessFunc[*priceLevel]) *sideBook {
	const degree = 32
	return &sideBook{levels: btree.NewG(degree, less)}
}

// best returns the side's extreme level: highest price for bids,
// lowest for asks.
func (s *sideBook) best() (*priceLevel, bool) {
	return s.levels.Min()
}

// upsert returns the level at price, creating it if absent.
func (s *sideBook) upsert(price int64) *priceLevel {
	if lvl, ok := s.levels.Get(&priceLevel{price: price}); ok {
		return lvl
	}
	lvl := &priceLevel{price: price}
	s.levels.ReplaceOrInsert(lvl)
	return lvl
}

func (s *sideBook) erase(lvl *priceLevel) {
	s.levels.Delete(lvl)
}

// levelCount returns the number of distinct price levels.
func (s *sideBook) levelCount() int {
	return s.levels.Len()
}

// walk iterates levels from best to worst. The callback returns true
// to continue, false to stop.
func (s *sideBook) walk(fn func(*priceLevel) bool) {
	s.levels.Ascend(fn)
}
