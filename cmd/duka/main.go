package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"duka/internal/amqp"
	"duka/internal/cli"
	apphttp "duka/internal/http"
	"duka/internal/report"
	"duka/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger("duka")
	cfg := cli.LoadAndValidateConfig(logger)

	records, cleanup := cli.InitStore(logger, cfg)
	defer func() {
		if err := cleanup(); err != nil {
			logger.Error("Store cleanup error", "error", err)
		}
	}()

	// Record sync publishing is best effort. Without a broker the shop still
	// keeps its books, only the background export stops.
	var publisher services.Publisher
	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Warn("AMQP unavailable, record sync disabled", "error", err)
	} else {
		publisher = amqpClient
		defer amqpClient.Close()
		logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	book := services.NewBookkeeper(records, publisher)
	reports := report.New(records, records, records, records)

	srv := apphttp.NewServer(":"+cfg.Port, book, reports)
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting duka server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
