package main

import (
	"context"
	"flag"
	"os"
	"time"

	"kopilka/internal/cli"
	"kopilka/internal/config"
	"kopilka/internal/core"
	"kopilka/internal/log"
	"kopilka/internal/rates"
	"kopilka/internal/reportsink"
	"kopilka/internal/services"
	"kopilka/internal/timewin"
)

func main() {
	dateFlag := flag.String("date", "", "reference date as DD.MM.YYYY (default: today)")
	outFlag := flag.String("out", "", "write the dashboard to this file instead of stdout")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentDashboard)
	cfg := cli.LoadAndValidateConfig(logger)

	var ref time.Time
	if *dateFlag != "" {
		day, err := core.ParseDayDate(*dateFlag)
		if err != nil {
			logger.Error("Invalid -date value", log.FieldError, err, log.FieldRefDate, *dateFlag)
			os.Exit(1)
		}
		ref = day
	}

	ctx := context.Background()
	result, cleanup := cli.InitLedgerSource(ctx, logger, cfg)
	defer cleanup()

	quotes := rates.New(nil, quoteConfig(cfg))
	svc := services.NewDashboardService(
		result.Source, quotes, timewin.SystemClock{},
		cfg.UserCurrencies, cfg.UserStocks, logger)

	var sink reportsink.Sink = reportsink.WriterSink{}
	if *outFlag != "" {
		sink = reportsink.FileSink{Path: *outFlag}
	}

	if _, err := reportsink.Publish(ctx, sink, "dashboard", func() (services.Dashboard, error) {
		return svc.Build(ctx, ref)
	}); err != nil {
		logger.Error("Dashboard build failed", log.FieldError, err)
		os.Exit(1)
	}
}

func quoteConfig(cfg *config.Config) rates.Config {
	return rates.Config{
		CurrencyAPIKey: cfg.CurrencyAPIKey,
		StocksAPIKey:   cfg.StocksAPIKey,
		BaseCurrency:   cfg.BaseCurrency,
		CacheSize:      cfg.RateCacheSize,
		CacheTTL:       cfg.RateCacheTTL,
		Parallel:       cfg.RatesParallel,
	}
}
