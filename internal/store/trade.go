package store

import (
	"sync"

	"matchbook/internal/domain"
)

// TradeLog is an append-only in-memory record of the trades executed
// during one run. Trades are kept in chronological order. Safe for
// concurrent use.
type TradeLog struct {
	mu     sync.RWMutex
	trades []domain.Trade
}

// NewTradeLog creates an empty TradeLog.
func NewTradeLog() *TradeLog {
	return &TradeLog{}
}

// Append adds trades to the log in order.
func (l *TradeLog) Append(trades ...domain.Trade) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.trades = append(l.trades, trades...)
}

// All returns every logged trade in chronological order. The result
// is a copy; callers may not mutate the log through it.
func (l *TradeLog) All() []domain.Trade {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]domain.Trade, len(l.trades))
	copy(result, l.trades)
	return result
}

// Len returns the number of logged trades.
func (l *TradeLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.trades)
}

// Volume returns the total traded quantity.
func (l *TradeLog) Volume() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var total int64
	for _, t := range l.trades {
		total += t.Quantity
	}
	return total
}

// VWAP computes the volume-weighted average trade price as
// sum(price × quantity) / sum(quantity) using integer arithmetic.
// Returns (0, false) when no trades have been logged.
func (l *TradeLog) VWAP() (int64, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var volume, notional int64
	for _, t := range l.trades {
		volume += t.Quantity
		notional += t.Price * t.Quantity
	}
	if volume == 0 {
		return 0, false
	}
	return notional / volume, true
}
