package apidb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/chainsafe/kilt-attester/pkg/anchorstore"
	mghelper "github.com/chainsafe/kilt-attester/pkg/pgutil/migrations"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		if err := mghelper.CreateSchema(ctx, db, &anchorstore.CTypeDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &anchorstore.CTypeDao{}, "owner_did")
	}, func(ctx context.Context, db *bun.DB) error {
		return mghelper.DropTables(ctx, db, &anchorstore.CTypeDao{})
	})
}
