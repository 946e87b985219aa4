package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"matchbook/internal/bench"
	"matchbook/internal/config"
	"matchbook/internal/engine"
	"matchbook/internal/script"
	"matchbook/internal/store"
)

func main() {
	benchMode := flag.Bool("bench", false, "run the synthetic-flow benchmark instead of a script")
	scriptPath := flag.String("script", "", "script file to execute (default stdin)")
	orders := flag.Int("orders", 500000, "bench: number of orders to submit")
	basePrice := flag.Int64("base-price", 10000, "bench: mid price used for randomization")
	priceLevels := flag.Int64("price-levels", 200, "bench: unique price levels around the mid")
	marketRatio := flag.Int("market-ratio", 5, "bench: 1 in N orders will be market instead of limit")
	cancelEvery := flag.Int("cancel-every", 0, "bench: cancel a random resting order every N submissions")
	sampleEvery := flag.Int("sample-every", 64, "bench: sample operation latency every N submissions")
	seed := flag.Int64("seed", time.Now().UnixNano(), "bench: seed for deterministic random streams")
	flag.Parse()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up slog logger with configured level.
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if *benchMode {
		runner := bench.NewRunner(bench.Config{
			Orders:      *orders,
			BasePrice:   *basePrice,
			PriceLevels: *priceLevels,
			MarketRatio: *marketRatio,
			CancelEvery: *cancelEvery,
			SampleEvery: *sampleEvery,
			Seed:        *seed,
		}, logger)
		report := runner.Run()

		fmt.Printf("submitted %d orders in %s (%.0f orders/s)\n",
			report.Orders, report.Elapsed.Truncate(time.Millisecond), report.OrdersPerSec)
		fmt.Printf("matched %d trades (%.0f trades/s), %d cancels\n",
			report.Trades, report.TradesPerSec, report.Cancels)
		if report.Samples > 0 {
			fmt.Printf("latency p50=%s p90=%s p99=%s max=%s (%d samples)\n",
				report.P50, report.P90, report.P99, report.Max, report.Samples)
		}
		return
	}

	in := os.Stdin
	if *scriptPath != "" {
		f, err := os.Open(*scriptPath)
		if err != nil {
			logger.Error("failed to open script", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	book := engine.NewBook(engine.Options{
		MarketRemainder: engine.MarketRemainderPolicy(cfg.MarketRemainder),
	})
	trades := store.NewTradeLog()
	interp := script.New(book, trades, os.Stdout, logger, cfg.SummaryDepth)

	if err := interp.Run(in); err != nil {
		logger.Error("script failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
