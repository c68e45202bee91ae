package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"duka/internal/amqp"
	"duka/internal/cli"
	"duka/internal/export/google"
	"duka/internal/report"
	"duka/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger("duka-worker")
	logger.Info("Starting duka-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	records, cleanup := cli.InitStore(logger, cfg)
	defer func() {
		if err := cleanup(); err != nil {
			logger.Error("Store cleanup error", "error", err)
		}
	}()

	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("Google Sheets export disabled - no GOOGLE_SPREADSHEET_ID provided, nothing to do")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sheetsClient, err := google.New(ctx, google.Config{
		SpreadsheetID: cfg.GoogleSpreadsheetID,
		RecordsSheet:  cfg.GoogleSheetName,
	})
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	reports := report.New(records, records, records, records)
	syncWorker := worker.NewSyncWorker(records, reports, sheetsClient)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeRecordSync(gctx, func(msg *amqp.RecordSyncMessage) error {
			return syncWorker.HandleSyncMessage(gctx, msg)
		})
	})

	g.Go(func() error {
		return syncWorker.RunPeriodicSummaryExport(gctx, cfg.ExportInterval)
	})

	logger.Info("Worker running", "export_interval", cfg.ExportInterval.String())

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}
