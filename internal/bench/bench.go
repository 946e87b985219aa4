// Package bench replays synthetic pseudo-random order flow against a
// fresh book and measures throughput and sampled per-operation
// latency.
package bench

import (
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"matchbook/internal/domain"
	"matchbook/internal/engine"
)

// Config controls the synthetic order flow replayed by a Runner.
type Config struct {
	Orders      int
	BasePrice   int64 // mid price used for randomization
	PriceLevels int64 // unique price levels around the mid
	MarketRatio int   // 1 in N orders is a market order; 0 disables
	CancelEvery int   // cancel a random earlier order every N submissions; 0 disables
	SampleEvery int   // sample operation latency every N submissions; 0 disables
	Seed        int64
}

// Report summarizes one benchmark run.
type Report struct {
	Orders       int
	Trades       int
	Cancels      int
	Elapsed      time.Duration
	OrdersPerSec float64
	TradesPerSec float64
	Samples      int
	P50          time.Duration
	P90          time.Duration
	P99          time.Duration
	Max          time.Duration
}

// Runner drives one benchmark run. The random stream is fully
// determined by Config.Seed, so runs are reproducible.
type Runner struct {
	cfg    Config
	logger *slog.Logger
}

// NewRunner creates a Runner for the given configuration.
func NewRunner(cfg Config, logger *slog.Logger) *Runner {
	return &Runner{cfg: cfg, logger: logger}
}

// Run replays the configured flow and returns the measured report.
func (r *Runner) Run() Report {
	rng := rand.New(rand.NewSource(r.cfg.Seed))
	book := engine.NewBook(engine.Options{})

	r.logger.Info("benchmark starting",
		slog.Int("orders", r.cfg.Orders),
		slog.Int64("base_price", r.cfg.BasePrice),
		slog.Int64("seed", r.cfg.Seed))

	var samples []time.Duration
	trades := 0
	cancels := 0

	start := time.Now()
	for i := 0; i < r.cfg.Orders; i++ {
		id := uint64(i + 1)
		side, price, qty, market := r.nextOrder(rng)

		sampled := r.cfg.SampleEvery > 0 && i%r.cfg.SampleEvery == 0
		var opStart time.Time
		if sampled {
			opStart = time.Now()
		}

		var executed []domain.Trade
		var err error
		if market {
			executed, err = book.AddMarket(id, side, qty)
		} else {
			executed, err = book.AddLimit(id, side, price, qty)
		}
		if sampled {
			samples = append(samples, time.Since(opStart))
		}
		if err != nil {
			r.logger.Error("submit failed", slog.Uint64("id", id), slog.String("error", err.Error()))
			continue
		}
		trades += len(executed)

		if r.cfg.CancelEvery > 0 && i > 0 && i%r.cfg.CancelEvery == 0 {
			target := uint64(rng.Intn(i) + 1)
			if book.Cancel(target) {
				cancels++
			}
		}
	}
	elapsed := time.Since(start)

	report := Report{
		Orders:  r.cfg.Orders,
		Trades:  trades,
		Cancels: cancels,
		Elapsed: elapsed,
		Samples: len(samples),
	}
	if secs := elapsed.Seconds(); secs > 0 {
		report.OrdersPerSec = float64(r.cfg.Orders) / secs
		report.TradesPerSec = float64(trades) / secs
	}
	if len(samples) > 0 {
		sort.Slice(samples, func(a, b int) bool { return samples[a] < samples[b] })
		report.P50 = percentile(samples, 0.50)
		report.P90 = percentile(samples, 0.90)
		report.P99 = percentile(samples, 0.99)
		report.Max = samples[len(samples)-1]
	}
	return report
}

// nextOrder draws one order: buys priced at or above the mid, sells
// at or below, so a healthy share of the flow crosses.
func (r *Runner) nextOrder(rng *rand.Rand) (side domain.Side, price, qty int64, market bool) {
	side = domain.SideBuy
	if rng.Intn(2) == 1 {
		side = domain.SideSell
	}

	width := r.cfg.PriceLevels
	if width <= 0 {
		width = 1
	}
	if side == domain.SideBuy {
		price = r.cfg.BasePrice + rng.Int63n(width)
	} else {
		price = r.cfg.BasePrice - rng.Int63n(width)
		if price <= 0 {
			price = 1
		}
	}

	if r.cfg.MarketRatio > 0 && rng.Intn(r.cfg.MarketRatio) == 0 {
		market = true
	}

	qty = rng.Int63n(5) + 1
	return side, price, qty, market
}

// percentile returns the q-th quantile of sorted samples using
// nearest-rank on the zero-based index.
func percentile(sorted []time.Duration, q float64) time.Duration {
	idx := int(float64(len(sorted)-1) * q)
	return sorted[idx]
}
