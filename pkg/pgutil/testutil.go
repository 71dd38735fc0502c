package pgutil

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/chainsafe/kilt-attester/internal/testutil"
	"github.com/chainsafe/kilt-attester/pkg/config"
)

const (
	testDBName     = "kilt_attester_test"
	testDBUser     = "attester"
	testDBPassword = "attester"
)

// SetupTestDB starts a throwaway PostgreSQL container and connects to it.
// The test is skipped when docker is not available. The returned cleanup closes the
// connection and removes the container.
func SetupTestDB(t *testing.T) (*bun.DB, func()) {
	t.Helper()
	testutil.RequireDocker(t)
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase(testDBName),
		postgres.WithUsername(testDBUser),
		postgres.WithPassword(testDBPassword),
		testcontainers.WithWaitStrategy(
			// postgres logs readiness twice: once for the init run and once for the real server.
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	terminate := func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	cfg, err := containerConfig(ctx, container)
	if err != nil {
		terminate()
		t.Fatalf("failed to inspect postgres container: %v", err)
	}

	db, err := ConnectDBWithRetry(ctx, cfg, zap.NewNop())
	if err != nil {
		terminate()
		t.Fatalf("failed to connect to test database: %v", err)
	}

	return db, func() {
		_ = db.Close()
		terminate()
	}
}

func containerConfig(ctx context.Context, container *postgres.PostgresContainer) (*config.DatabaseConfig, error) {
	host, err := container.Host(ctx)
	if err != nil {
		return nil, err
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, err
	}
	return &config.DatabaseConfig{
		Host:           host,
		Port:           port.Int(),
		User:           testDBUser,
		Password:       testDBPassword,
		Database:       testDBName,
		SSLMode:        "disable",
		ConnectTimeout: 30 * time.Second,
	}, nil
}

// AssertTableExists fails the test when the public schema has no such table.
func AssertTableExists(t *testing.T, db *bun.DB, table string) {
	t.Helper()
	if !tableExists(t, db, table) {
		t.Errorf("table %s does not exist", table)
	}
}

// AssertTableNotExists fails the test when the public schema has the table.
func AssertTableNotExists(t *testing.T, db *bun.DB, table string) {
	t.Helper()
	if tableExists(t, db, table) {
		t.Errorf("table %s should not exist but it does", table)
	}
}

// AssertIndexExists fails the test when the public schema has no such index.
func AssertIndexExists(t *testing.T, db *bun.DB, index string) {
	t.Helper()
	if !exists(t, db, "SELECT 1 FROM pg_indexes WHERE schemaname = 'public' AND indexname = ?", index) {
		t.Errorf("index %s does not exist", index)
	}
}

// AssertRowCount fails the test when table does not hold exactly want rows.
func AssertRowCount(t *testing.T, db *bun.DB, table string, want int) {
	t.Helper()
	var got int
	err := db.NewSelect().TableExpr("?", bun.Ident(table)).ColumnExpr("COUNT(*)").Scan(context.Background(), &got)
	if err != nil {
		t.Fatalf("count rows in %s: %v", table, err)
	}
	if got != want {
		t.Errorf("table %s: expected %d rows, got %d", table, want, got)
	}
}

func tableExists(t *testing.T, db *bun.DB, table string) bool {
	t.Helper()
	return exists(t, db, "SELECT 1 FROM information_schema.tables WHERE table_schema = 'public' AND table_name = ?", table)
}

func exists(t *testing.T, db *bun.DB, query string, args ...any) bool {
	t.Helper()
	var ok bool
	if err := db.NewSelect().ColumnExpr("EXISTS ("+query+")", args...).Scan(context.Background(), &ok); err != nil {
		t.Fatalf("query %q: %v", query, err)
	}
	return ok
}
