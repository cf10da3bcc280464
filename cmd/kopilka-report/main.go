package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"kopilka/internal/amqp"
	"kopilka/internal/cli"
	"kopilka/internal/config"
	"kopilka/internal/core"
	"kopilka/internal/log"
	"kopilka/internal/report"
	"kopilka/internal/reportsink"
	"kopilka/internal/search"
	"kopilka/internal/timewin"
)

const usage = `Usage: kopilka-report <command> [flags]

Commands:
  category   three-month spending for one category
  weekday    mean spending per weekday over three months
  workday    mean spending for workdays and weekend days over three months
  cashback   cashback totals per category for one month
  roundup    investment roundup total for one month
  top        largest transactions by absolute amount
  search     transactions matching a text query
  mobile     transactions mentioning a mobile number
  transfers  transfers to private persons

Common flags:
  -out PATH  write the report to a file instead of stdout
  -publish   also publish the report to the configured AMQP exchange
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]

	fs := flag.NewFlagSet(command, flag.ExitOnError)
	outFlag := fs.String("out", "", "write the report to this file instead of stdout")
	publishFlag := fs.Bool("publish", false, "also publish to the configured AMQP exchange")
	dateFlag := fs.String("date", "", "reference date as YYYY.MM.DD (default: today)")
	monthFlag := fs.String("month", "", "report month as YYYY.MM (default: current month)")
	categoryFlag := fs.String("category", "", "spending category to report on")
	queryFlag := fs.String("query", "", "search text")
	unitFlag := fs.Int("unit", 50, "roundup unit: 10, 50 or 100")
	topFlag := fs.Int("n", report.DefaultTopN, "number of transactions to rank")
	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentReport)
	cfg := cli.LoadAndValidateConfig(logger)

	ctx := context.Background()
	result, cleanup := cli.InitLedgerSource(ctx, logger, cfg)
	defer cleanup()

	sink, closeSink, err := buildSink(cfg, *outFlag, *publishFlag)
	if err != nil {
		logger.Error("Failed to set up report sink", log.FieldError, err)
		os.Exit(1)
	}
	defer closeSink()

	txs, err := result.Source.Load(ctx)
	if err != nil {
		logger.Error("Failed to load ledger", log.FieldError, err, log.FieldBackend, cfg.LedgerBackend)
		os.Exit(1)
	}
	logger.Info("Ledger loaded", log.FieldRecords, len(txs), log.FieldBackend, cfg.LedgerBackend)

	now := timewin.SystemClock{}.Now()
	ref, err := refDate(*dateFlag, now)
	if err != nil {
		logger.Error("Invalid -date value", log.FieldError, err, log.FieldRefDate, *dateFlag)
		os.Exit(1)
	}
	year, month, err := yearMonth(*monthFlag, now)
	if err != nil {
		logger.Error("Invalid -month value", log.FieldError, err, log.FieldMonth, *monthFlag)
		os.Exit(1)
	}

	switch command {
	case "category":
		if *categoryFlag == "" {
			logger.Error("The category command requires -category")
			os.Exit(2)
		}
		_, err = reportsink.Publish(ctx, sink, "spending_by_category", func() ([]report.MonthlySpend, error) {
			return report.SpendingByCategory(txs, *categoryFlag, ref), nil
		})
	case "weekday":
		_, err = reportsink.Publish(ctx, sink, "spending_by_weekday", func() (map[string]float64, error) {
			return report.SpendingByWeekday(txs, ref), nil
		})
	case "workday":
		_, err = reportsink.Publish(ctx, sink, "spending_by_workday", func() (map[string]float64, error) {
			return report.SpendingByWorkday(txs, ref), nil
		})
	case "cashback":
		_, err = reportsink.Publish(ctx, sink, "cashback_by_category", func() (map[string]float64, error) {
			return report.CashbackByCategory(txs, year, month), nil
		})
	case "roundup":
		name := fmt.Sprintf("%04d.%02d", year, month)
		_, err = reportsink.Publish(ctx, sink, "investment_roundup", func() (int64, error) {
			return report.InvestmentRoundup(txs, name, *unitFlag)
		})
	case "top":
		_, err = reportsink.Publish(ctx, sink, "top_transactions", func() ([]report.RankedTransaction, error) {
			return report.TopByAmount(txs, *topFlag), nil
		})
	case "search":
		_, err = reportsink.Publish(ctx, sink, "search", func() ([]report.RankedTransaction, error) {
			return report.TransactionRows(search.ByText(txs, *queryFlag)), nil
		})
	case "mobile":
		_, err = reportsink.Publish(ctx, sink, "mobile_number_mentions", func() ([]report.RankedTransaction, error) {
			return report.TransactionRows(search.MobileNumberMentions(txs)), nil
		})
	case "transfers":
		_, err = reportsink.Publish(ctx, sink, "person_transfers", func() ([]report.RankedTransaction, error) {
			return report.TransactionRows(search.PersonTransfers(txs)), nil
		})
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		logger.Error("Report failed", log.FieldError, err, log.FieldReport, command)
		os.Exit(1)
	}
}

// refDate resolves the -date flag, defaulting to now.
func refDate(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now, nil
	}
	return core.ParseRefDate(s)
}

// yearMonth resolves the -month flag, defaulting to the current month.
func yearMonth(s string, now time.Time) (int, time.Month, error) {
	if s == "" {
		return now.Year(), now.Month(), nil
	}
	return core.ParseYearMonth(s)
}

// buildSink composes the output sink from the -out and -publish flags. The
// returned close function releases the AMQP connection when one was opened.
func buildSink(cfg *config.Config, out string, publish bool) (reportsink.Sink, func(), error) {
	sinks := reportsink.Multi{}
	if out != "" {
		sinks = append(sinks, reportsink.FileSink{Path: out})
	} else {
		sinks = append(sinks, reportsink.WriterSink{})
	}

	closeSink := func() {}
	if publish {
		if cfg.AMQPURL == "" {
			return nil, nil, fmt.Errorf("-publish requires AMQP_URL to be set")
		}
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to AMQP: %w", err)
		}
		sinks = append(sinks, reportsink.AMQPSink{Client: client})
		closeSink = func() { _ = client.Close() }
	}
	return sinks, closeSink, nil
}
