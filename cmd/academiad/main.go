package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/pflag"

	api "github.com/mind-engage/howacademia/internal/api/http"
	auth "github.com/mind-engage/howacademia/internal/auth/middleware"
	"github.com/mind-engage/howacademia/internal/config"
	"github.com/mind-engage/howacademia/internal/datastore"
	"github.com/mind-engage/howacademia/internal/events"
	"github.com/mind-engage/howacademia/internal/logging"
	"github.com/mind-engage/howacademia/internal/rbac"
)

const version = "0.1.0"

func main() {
	envFile := pflag.String("env-file", ".env", "dotenv file to load before reading the environment")
	addr := pflag.String("addr", "", "listen address (overrides HTTP_ADDR)")
	storeDriver := pflag.String("store", "", "persistence surface: memory|fs|sql (overrides STORE_DRIVER)")
	pflag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}
	if *storeDriver != "" {
		cfg.StoreDriver = *storeDriver
	}

	logger, closer := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	defer closer.Close()
	slog.SetDefault(logger)

	if cfg.Banner {
		printStartUpBanner()
	}
	if err := run(cfg, logger); err != nil {
		logger.Error("academiad stopped", "err", err)
		closer.Close()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	be, err := openBackend(openCtx, cfg)
	cancel()
	if err != nil {
		return err
	}
	defer be.Close()

	bus := events.NewBus(logger)
	if cfg.EventLog {
		if be.db == nil {
			return errors.New("EVENT_LOG needs a SQL database (STORE_DRIVER=sql or DB_DSN)")
		}
		bus.Subscribe(events.NewEventLog(be.db, "local", logger).Handler())
	}
	bus.Subscribe(func(e events.Event) {
		logger.Debug("change", "kind", e.Kind, "ids", e.IDs)
	})

	store := datastore.New(ctx, be.kv,
		datastore.WithLogger(logger),
		datastore.WithBus(bus),
		datastore.WithCourseCapacity(cfg.CourseCapacity),
		datastore.WithSessionCapacityCheck(cfg.EnforceSessionCapacity),
		datastore.WithUniqueSubmissions(cfg.UniqueSubmissions),
	)

	handler := api.NewRouter(api.Deps{
		Store:          store,
		Auth:           auth.NewAuthService(cfg.AuthHMACSecret, cfg.TokenTTL),
		RBAC:           rbac.NewMiddleware(nil),
		Logger:         logger,
		CORSOrigins:    cfg.CORSOrigins,
		AuthRatePerSec: cfg.AuthRatePerSec,
		AuthRateBurst:  cfg.AuthRateBurst,
		Ready:          be.Ping,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr, "mode", cfg.Mode, "store", cfg.StoreDriver)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func printStartUpBanner() {
	myFigure := figure.NewFigure("HOW ACADEMIA", "", true)
	myFigure.Print()

	fmt.Println("======================================================")
	fmt.Printf("How Academia API (v%s)\n\n", version)
}
