package apidb

import (
	"context"

	"github.com/uptrace/bun"

	mghelper "github.com/chainsafe/kilt-attester/pkg/pgutil/migrations"
	"github.com/chainsafe/kilt-attester/pkg/userstore"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		return mghelper.CreateSchema(ctx, db, &userstore.UserDao{})
	}, func(ctx context.Context, db *bun.DB) error {
		return mghelper.DropTables(ctx, db, &userstore.UserDao{})
	})
}
