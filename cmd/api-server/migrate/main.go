package main

import (
	"context"
	"flag"
	"log"

	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"

	"github.com/chainsafe/kilt-attester/pkg/config"
	"github.com/chainsafe/kilt-attester/pkg/migrations/apidb"
	"github.com/chainsafe/kilt-attester/pkg/pgutil"
	mghelper "github.com/chainsafe/kilt-attester/pkg/pgutil/migrations"
)

func main() {
	cfgPath := flag.String("config", "config.api-server.yaml", "Path to configuration file")
	flag.Usage = mghelper.Usage
	flag.Parse()

	cfg, err := config.LoadAPIServer(*cfgPath)
	if err != nil {
		log.Fatalf("error reading configuration file: %s", err.Error())
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	db, err := pgutil.ConnectDBWithRetry(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Fatal("error connecting to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("running migrations for API server database", zap.String("database", cfg.Database.Database))

	migrator := migrate.NewMigrator(db, apidb.Migrations)
	if err = mghelper.RunMigrations(ctx, migrator, logger, flag.Args()...); err != nil {
		mghelper.Exitf("%s", err.Error())
	}
}
