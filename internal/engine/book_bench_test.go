package engine

import (
	"math/rand"
	"testing"

	"matchbook/internal/domain"
)

type benchOrder struct {
	side   domain.Side
	price  int64
	qty    int64
	market bool
}

func randomBenchOrder(rng *rand.Rand) benchOrder {
	o := benchOrder{qty: rng.Int63n(5) + 1}
	base := int64(10_000)
	width := int64(100)
	if rng.Intn(2) == 0 {
		o.side = domain.SideBuy
		o.price = base + rng.Int63n(width)
	} else {
		o.side = domain.SideSell
		o.price = base - rng.Int63n(width)
		if o.price <= 0 {
			o.price = 1
		}
	}
	if rng.Intn(5) == 0 {
		o.market = true
	}
	return o
}

func BenchmarkMatchThroughput(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	orders := make([]benchOrder, b.N)
	for i := range orders {
		orders[i] = randomBenchOrder(rng)
	}

	book := NewBook(Options{})
	var matched int64

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		o := orders[i]
		id := uint64(i + 1)
		var trades []domain.Trade
		var err error
		if o.market {
			trades, err = book.AddMarket(id, o.side, o.qty)
		} else {
			trades, err = book.AddLimit(id, o.side, o.price, o.qty)
		}
		if err != nil {
			b.Fatalf("submit failed: %v", err)
		}
		matched += int64(len(trades))
	}

	b.StopTimer()
	if elapsed := b.Elapsed(); elapsed > 0 {
		b.ReportMetric(float64(matched)/elapsed.Seconds(), "trades/sec")
	}
}

func BenchmarkCancel(b *testing.B) {
	book := NewBook(Options{})
	// Non-crossing bids so every order rests.
	for i := 0; i < b.N; i++ {
		if _, err := book.AddLimit(uint64(i+1), domain.SideBuy, int64(i%500)+1, 1); err != nil {
			b.Fatalf("setup failed: %v", err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if !book.Cancel(uint64(i + 1)) {
			b.Fatal("cancel failed")
		}
	}
}
