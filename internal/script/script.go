// Package script implements the line-oriented command front end for
// the order book. It translates textual commands into book operations
// and prints one line per trade plus a result line per command.
package script

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"matchbook/internal/domain"
	"matchbook/internal/engine"
	"matchbook/internal/store"
)

// Interpreter executes a command script against a single Book.
// Blank lines and lines starting with "#" are ignored. Recognized
// commands:
//
//	ADD <id> <BUY|SELL> <price> <qty>
//	MARKET <id> <BUY|SELL> <qty>
//	CANCEL <id>
//	QUOTE <BUY|SELL> <qty>
type Interpreter struct {
	book   *engine.Book
	trades *store.TradeLog
	out    io.Writer
	logger *slog.Logger
	depth  int
}

// New creates an Interpreter writing command results to out.
// summaryDepth controls how many price levels per side the end-of-run
// summary shows.
func New(book *engine.Book, trades *store.TradeLog, out io.Writer, logger *slog.Logger, summaryDepth int) *Interpreter {
	return &Interpreter{
		book:   book,
		trades: trades,
		out:    out,
		logger: logger,
		depth:  summaryDepth,
	}
}

// Run executes every command in r and prints the end-of-run summary.
// Command failures are reported inline as ERR lines and do not stop
// the run; only a read failure aborts it.
func (in *Interpreter) Run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := in.exec(line); err != nil {
			fmt.Fprintf(in.out, "ERR line=%d %v\n", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	in.printSummary()
	return nil
}

func (in *Interpreter) exec(line string) error {
	fields := strings.Fields(line)
	verb := strings.ToUpper(fields[0])
	in.logger.Debug("command", slog.String("verb", verb), slog.String("line", line))

	switch verb {
	case "ADD":
		return in.execAdd(fields)
	case "MARKET":
		return in.execMarket(fields)
	case "CANCEL":
		return in.execCancel(fields)
	case "QUOTE":
		return in.execQuote(fields)
	}
	return fmt.Errorf("unknown command: %s", verb)
}

func (in *Interpreter) execAdd(fields []string) error {
	if len(fields) != 5 {
		return fmt.Errorf("usage: ADD <id> <BUY|SELL> <price> <qty>")
	}
	id, err := parseID(fields[1])
	if err != nil {
		return err
	}
	side, err := domain.ParseSide(fields[2])
	if err != nil {
		return err
	}
	price, err := parseInt64("price", fields[3])
	if err != nil {
		return err
	}
	qty, err := parseInt64("qty", fields[4])
	if err != nil {
		return err
	}

	trades, err := in.book.AddLimit(id, side, price, qty)
	if err != nil {
		return err
	}
	in.printTrades(trades)

	resting := int64(0)
	if order, ok := in.book.Resting(id); ok {
		resting = order.RemainingQuantity
	}
	fmt.Fprintf(in.out, "OK id=%d filled=%d resting=%d\n", id, qty-resting, resting)
	return nil
}

func (in *Interpreter) execMarket(fields []string) error {
	if len(fields) != 4 {
		return fmt.Errorf("usage: MARKET <id> <BUY|SELL> <qty>")
	}
	id, err := parseID(fields[1])
	if err != nil {
		return err
	}
	side, err := domain.ParseSide(fields[2])
	if err != nil {
		return err
	}
	qty, err := parseInt64("qty", fields[3])
	if err != nil {
		return err
	}

	trades, err := in.book.AddMarket(id, side, qty)
	if err != nil {
		return err
	}
	in.printTrades(trades)

	var filled int64
	for _, t := range trades {
		filled += t.Quantity
	}
	fmt.Fprintf(in.out, "OK id=%d filled=%d dropped=%d\n", id, filled, qty-filled)
	return nil
}

func (in *Interpreter) execCancel(fields []string) error {
	if len(fields) != 2 {
		return fmt.Errorf("usage: CANCEL <id>")
	}
	id, err := parseID(fields[1])
	if err != nil {
		return err
	}
	if in.book.Cancel(id) {
		fmt.Fprintf(in.out, "OK cancelled id=%d\n", id)
	} else {
		fmt.Fprintf(in.out, "NOT_FOUND id=%d\n", id)
	}
	return nil
}

func (in *Interpreter) execQuote(fields []string) error {
	if len(fields) != 3 {
		return fmt.Errorf("usage: QUOTE <BUY|SELL> <qty>")
	}
	side, err := domain.ParseSide(fields[1])
	if err != nil {
		return err
	}
	qty, err := parseInt64("qty", fields[2])
	if err != nil {
		return err
	}

	quote := in.book.Quote(side, qty)
	avg := "none"
	if quote.EstimatedAvgPrice != nil {
		avg = strconv.FormatInt(*quote.EstimatedAvgPrice, 10)
	}
	total := "none"
	if quote.EstimatedTotal != nil {
		total = strconv.FormatInt(*quote.EstimatedTotal, 10)
	}
	fmt.Fprintf(in.out, "QUOTE side=%s available=%d fully_fillable=%t avg_price=%s total=%s\n",
		side, quote.QuantityAvailable, quote.FullyFillable, avg, total)
	return nil
}

func (in *Interpreter) printTrades(trades []domain.Trade) {
	for _, t := range trades {
		fmt.Fprintf(in.out, "TRADE price=%d qty=%d buy=%d sell=%d\n",
			t.Price, t.Quantity, t.BuyOrderID, t.SellOrderID)
	}
	if len(trades) > 0 {
		in.trades.Append(trades...)
	}
}

func (in *Interpreter) printSummary() {
	bestBid, hasBid := in.book.BestBid()
	bestAsk, hasAsk := in.book.BestAsk()

	vwap := "none"
	if v, ok := in.trades.VWAP(); ok {
		vwap = strconv.FormatInt(v, 10)
	}

	fmt.Fprintf(in.out, "SUMMARY best_bid=%s best_ask=%s bids=%d asks=%d trades=%d volume=%d vwap=%s\n",
		formatPrice(bestBid, hasBid), formatPrice(bestAsk, hasAsk),
		in.book.BidCount(), in.book.AskCount(),
		in.trades.Len(), in.trades.Volume(), vwap)

	for _, lvl := range in.book.TopBids(in.depth) {
		fmt.Fprintf(in.out, "DEPTH bid price=%d qty=%d orders=%d\n", lvl.Price, lvl.TotalQuantity, lvl.OrderCount)
	}
	for _, lvl := range in.book.TopAsks(in.depth) {
		fmt.Fprintf(in.out, "DEPTH ask price=%d qty=%d orders=%d\n", lvl.Price, lvl.TotalQuantity, lvl.OrderCount)
	}
}

func formatPrice(p int64, ok bool) string {
	if !ok {
		return "none"
	}
	return strconv.FormatInt(p, 10)
}

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id: %q", s)
	}
	return id, nil
}

func parseInt64(name, s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, s)
	}
	return v, nil
}
