// Command roles grants roles to a user, creating the user when it never logged in.
//
//	go run cmd/api-server/roles/main.go -config config.api-server.yaml -did did:kilt:4... attester user
package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/chainsafe/kilt-attester/pkg/config"
	"github.com/chainsafe/kilt-attester/pkg/did"
	"github.com/chainsafe/kilt-attester/pkg/pgutil"
	"github.com/chainsafe/kilt-attester/pkg/userstore"
)

func main() {
	cfgPath := flag.String("config", "config.api-server.yaml", "Path to configuration file")
	subject := flag.String("did", "", "Full DID of the user")
	flag.Parse()

	roles := flag.Args()
	if *subject == "" || len(roles) == 0 {
		log.Fatalf("usage: roles [-config file] -did <did> <role>...")
	}
	id, err := did.ParseFull(*subject)
	if err != nil {
		log.Fatalf("invalid DID: %s", err.Error())
	}

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

	store := userstore.NewStore(db)
	_, created, err := store.GetOrCreateUser(ctx, id.String(), roles...)
	if err != nil {
		logger.Fatal("failed to load user", zap.Error(err))
	}
	if !created {
		if err := store.SetRoles(ctx, id.String(), roles...); err != nil {
			logger.Fatal("failed to set roles", zap.Error(err))
		}
	}

	logger.Info("roles granted",
		zap.String("did", id.String()),
		zap.Strings("roles", roles),
		zap.Bool("created", created),
	)
}
