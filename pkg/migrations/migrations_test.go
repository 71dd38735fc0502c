package migrations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"

	"github.com/chainsafe/kilt-attester/pkg/migrations/apidb"
	"github.com/chainsafe/kilt-attester/pkg/pgutil"
	mghelper "github.com/chainsafe/kilt-attester/pkg/pgutil/migrations"
)

func TestAPIDBMigrations_Apply(t *testing.T) {
	db, cleanup := pgutil.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	migrator := migrate.NewMigrator(db, apidb.Migrations)
	require.NoError(t, migrator.Init(ctx))

	group, err := migrator.Migrate(ctx)
	require.NoError(t, err)
	require.False(t, group.IsZero(), "expected migrations to run")

	for _, table := range []string{"users", "ctypes", "attestations", "bun_migrations"} {
		pgutil.AssertTableExists(t, db, table)
	}
	pgutil.AssertIndexExists(t, db, "idx_ctypes_owner_did")
	pgutil.AssertIndexExists(t, db, "idx_attestations_ctype_id")
	pgutil.AssertIndexExists(t, db, "idx_attestations_owner_did")
}

func TestAPIDBMigrations_Idempotency(t *testing.T) {
	db, cleanup := pgutil.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	migrator := migrate.NewMigrator(db, apidb.Migrations)
	require.NoError(t, migrator.Init(ctx))

	_, err := migrator.Migrate(ctx)
	require.NoError(t, err)

	group, err := migrator.Migrate(ctx)
	require.NoError(t, err)
	require.True(t, group.IsZero(), "second run should apply nothing")
}

func TestAPIDBMigrations_Rollback(t *testing.T) {
	db, cleanup := pgutil.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	migrator := migrate.NewMigrator(db, apidb.Migrations)
	logger := zap.NewNop()

	require.Error(t, mghelper.RunMigrations(ctx, migrator, logger))
	require.ErrorContains(t, mghelper.RunMigrations(ctx, migrator, logger, "sideways"), "unknown command")

	require.NoError(t, mghelper.RunMigrations(ctx, migrator, logger, "init"))
	require.NoError(t, mghelper.RunMigrations(ctx, migrator, logger, "up"))
	require.NoError(t, mghelper.RunMigrations(ctx, migrator, logger, "status"))
	pgutil.AssertTableExists(t, db, "attestations")

	require.NoError(t, mghelper.RunMigrations(ctx, migrator, logger, "down"))
	pgutil.AssertTableNotExists(t, db, "users")
	pgutil.AssertTableNotExists(t, db, "ctypes")
	pgutil.AssertTableNotExists(t, db, "attestations")
}
