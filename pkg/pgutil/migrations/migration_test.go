package migrations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/chainsafe/kilt-attester/pkg/pgutil"
)

type testDao struct {
	bun.BaseModel `bun:"table:test_table"`
	ID            int64  `bun:",pk,autoincrement"`
	Name          string `bun:",notnull,type:varchar(100)"`
	Ref           string `bun:",nullzero"`
}

func TestSchemaHelpers(t *testing.T) {
	db, cleanup := pgutil.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, CreateSchema(ctx, db, &testDao{}))
	pgutil.AssertTableExists(t, db, "test_table")
	require.NoError(t, CreateSchema(ctx, db, &testDao{}), "CreateSchema must be idempotent")

	require.NoError(t, CreateModelIndexes(ctx, db, &testDao{}, "name"))
	require.NoError(t, CreateModelUniqueIndexes(ctx, db, &testDao{}, "ref"))
	pgutil.AssertIndexExists(t, db, "idx_test_table_name")
	pgutil.AssertIndexExists(t, db, "idx_test_table_ref")

	name, err := ModelIndexName(db, &testDao{}, "name")
	require.NoError(t, err)
	require.Equal(t, "idx_test_table_name", name)

	_, err = db.NewInsert().Model(&testDao{Name: "a", Ref: "x"}).Exec(ctx)
	require.NoError(t, err)
	_, err = db.NewInsert().Model(&testDao{Name: "b", Ref: "x"}).Exec(ctx)
	require.Error(t, err, "unique index on ref must reject duplicates")

	require.NoError(t, TruncateTables(ctx, db, &testDao{}))
	pgutil.AssertRowCount(t, db, "test_table", 0)

	require.NoError(t, DropModelIndexes(ctx, db, &testDao{}, "name", "ref"))
	require.NoError(t, DropTables(ctx, db, &testDao{}))
	pgutil.AssertTableNotExists(t, db, "test_table")
}
