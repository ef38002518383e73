package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/campus-rideshare/ride-core/internal/adapters/postgres"
)

// OpenMigratedPool connects to TEST_DATABASE_URL and applies migrations.
// The test is skipped when the variable is unset.
func OpenMigratedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres tests")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolOptions{MaxConns: 4})
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := postgres.Migrate(ctx, pool); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return pool
}
