package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	_ "time/tzdata"

	"go.etcd.io/bbolt"

	"github.com/Roma7-7-7/fuel-stations/internal/config"
	"github.com/Roma7-7-7/fuel-stations/internal/dal"
	"github.com/Roma7-7-7/fuel-stations/internal/dal/migrations"
	"github.com/Roma7-7-7/fuel-stations/internal/providers"
	"github.com/Roma7-7-7/fuel-stations/internal/server"
	"github.com/Roma7-7-7/fuel-stations/internal/service"
	"github.com/Roma7-7-7/fuel-stations/pkg/clock"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	conf, err := config.NewConfig()
	if err != nil {
		slog.Error("Failed to process env vars", "error", err)
		return 1
	}

	log := mustLogger(conf.Dev)

	c, err := clock.NewInZone(conf.Timezone)
	if err != nil {
		log.Error("Failed to load timezone", "timezone", conf.Timezone, "error", err)
		return 1
	}

	db, err := bbolt.Open(conf.DBPath, 0600, nil) //nolint:mnd // file mode
	if err != nil {
		log.Error("Failed to open database", "path", conf.DBPath, "error", err)
		return 1
	}
	defer db.Close()

	if err = migrations.RunMigrations(db, log); err != nil {
		log.Error("Failed to run migrations", "error", err)
		return 1
	}

	store, err := dal.NewBoltDB(db)
	if err != nil {
		log.Error("Failed to create store", "error", err)
		return 1
	}

	provider := providers.NewMineturProvider(conf.StationsURL, &http.Client{Timeout: conf.FetchTimeout}, log)
	stationsSvc := service.NewStations(store, provider, c, conf.FetchTimeout, log)
	scheduler := service.NewScheduler(stationsSvc, conf.RefreshInterval, log)
	srv := server.New(conf.HTTPAddr, stationsSvc, c, log)

	wg := &sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		scheduler.Start(ctx)
	}()

	exitCode := 0
	if err = srv.Start(ctx); err != nil {
		log.Error("HTTP server failed", "error", err)
		exitCode = 1
		cancel()
	}

	wg.Wait()
	log.Info("Stopped")
	return exitCode
}

func mustLogger(dev bool) *slog.Logger {
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	if dev {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	return slog.New(handler)
}
