package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"

	memstatestore "github.com/campus-rideshare/ride-core/internal/adapters/memory/statestore"
	postgres "github.com/campus-rideshare/ride-core/internal/adapters/postgres"
	pgstatestore "github.com/campus-rideshare/ride-core/internal/adapters/postgres/statestore"
	redisstatestore "github.com/campus-rideshare/ride-core/internal/adapters/redis/statestore"
	sqlitestatestore "github.com/campus-rideshare/ride-core/internal/adapters/sqlite/statestore"
	"github.com/campus-rideshare/ride-core/internal/app/mapview"
	"github.com/campus-rideshare/ride-core/internal/app/pricing"
	"github.com/campus-rideshare/ride-core/internal/app/rides"
	platformclock "github.com/campus-rideshare/ride-core/internal/platform/clock"
	"github.com/campus-rideshare/ride-core/internal/platform/config"
	"github.com/campus-rideshare/ride-core/internal/platform/logging"
	statestoreport "github.com/campus-rideshare/ride-core/internal/ports/out/statestore"
)

type flags struct {
	geoJSON bool
	metrics bool
}

func main() {
	var f flags
	flag.BoolVar(&f.geoJSON, "geojson", false, "print the map markers of active rides as GeoJSON")
	flag.BoolVar(&f.metrics, "metrics", false, "print store metrics in Prometheus text format before exiting")
	flag.Parse()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(2)
	}
	log := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, f, log, os.Stdout)
	stop()
	if err != nil {
		log.WithError(err).Error("rideshare failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, f flags, log *logrus.Logger, out io.Writer) error {
	backend, cleanup, err := openBackend(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s backend: %w", cfg.Backend, err)
	}
	defer cleanup()

	calc := pricing.Calculator{Origin: pricing.Campus, PerKm: cfg.PricePerKm, MinFare: cfg.MinFare}
	store := rides.NewStore(backend, platformclock.NewSystemClock(), rides.Options{
		StorageKey:   cfg.StorageKey,
		AutoAccept:   rides.AutoAcceptDrivers(cfg.AutoAcceptDrivers...),
		Pricing:      &calc,
		SeedLocation: cfg.SeedLocation,
		Logger:       log,
	})
	if err := store.Init(ctx); err != nil {
		return err
	}
	if cfg.SeedDemoData && store.SeedDemoData(ctx) {
		log.Info("seeded demo data")
	}

	snap := store.Snapshot()
	log.WithFields(logrus.Fields{
		"backend":           cfg.Backend,
		"rides":             len(snap.Rides),
		"available":         len(store.AvailableRides()),
		"passengerRequests": len(snap.PassengerRideRequests),
		"hasUser":           snap.CurrentUser != nil,
	}).Info("ride state ready")

	if f.geoJSON {
		b, err := mapview.GeoJSON(mapview.Markers(snap.Rides, ""))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(b))
	}
	if f.metrics {
		if err := writeMetrics(out, prometheus.DefaultGatherer); err != nil {
			return err
		}
	}
	return nil
}

// writeMetrics dumps the rideshare_* families from g in the text exposition format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "rideshare_") {
			continue
		}
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return nil
}

func openBackend(ctx context.Context, cfg config.Config) (statestoreport.Store, func(), error) {
	noop := func() {}
	switch cfg.Backend {
	case config.BackendMemory:
		return memstatestore.NewStore(), noop, nil
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, postgres.PoolOptions{})
		if err != nil {
			return nil, noop, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return pgstatestore.NewStore(pool), pool.Close, nil
	case config.BackendRedis:
		client, err := redisstatestore.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, noop, err
		}
		return redisstatestore.NewStore(client, cfg.RedisPrefix), func() { _ = client.Close() }, nil
	default:
		s, err := sqlitestatestore.Open(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return s, func() { _ = s.Close() }, nil
	}
}
