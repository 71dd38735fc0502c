// Package api implements app.Runner for the API server process.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/chainsafe/kilt-attester/pkg/anchorstore"
	apphttp "github.com/chainsafe/kilt-attester/pkg/app/http"
	"github.com/chainsafe/kilt-attester/pkg/attestation"
	attestationservice "github.com/chainsafe/kilt-attester/pkg/attestation/service"
	"github.com/chainsafe/kilt-attester/pkg/auth"
	"github.com/chainsafe/kilt-attester/pkg/challenge"
	"github.com/chainsafe/kilt-attester/pkg/config"
	ctypeservice "github.com/chainsafe/kilt-attester/pkg/ctype/service"
	"github.com/chainsafe/kilt-attester/pkg/events"
	"github.com/chainsafe/kilt-attester/pkg/keys"
	"github.com/chainsafe/kilt-attester/pkg/kiltsdk/chain"
	"github.com/chainsafe/kilt-attester/pkg/network"
	networkservice "github.com/chainsafe/kilt-attester/pkg/network/service"
	"github.com/chainsafe/kilt-attester/pkg/pgutil"
	"github.com/chainsafe/kilt-attester/pkg/resolver"
	"github.com/chainsafe/kilt-attester/pkg/transaction"
	userservice "github.com/chainsafe/kilt-attester/pkg/user/service"
	"github.com/chainsafe/kilt-attester/pkg/userstore"
)

// appKeyResolveTimeout bounds the startup lookup of the application DID.
const appKeyResolveTimeout = 30 * time.Second

// Server holds cfg to init the api server.
type Server struct {
	cfg *config.APIServerConfig
}

// NewServer initializes new api server.
func NewServer(cfg *config.APIServerConfig) *Server {
	return &Server{cfg: cfg}
}

// services are the HTTP-facing services, each wrapped in its logging decorator.
type services struct {
	session      userservice.Service
	ctypes       ctypeservice.Service
	attestations attestationservice.Service
	networks     networkservice.Service
}

func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("api server config is nil")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting API server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.Int("networks", len(cfg.Networks)),
	)

	db, err := pgutil.ConnectDBWithRetry(ctx, &cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	logger.Info("Connected to database",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Database),
	)

	redisClient, err := s.openRedis(ctx, logger)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	publisher, err := events.NewPublisher(cfg.Events, redisClient, logger)
	if err != nil {
		return err
	}
	defer func() { _ = publisher.Close() }()

	svcs, err := s.buildServices(ctx, db, redisClient, publisher, logger)
	if err != nil {
		return err
	}

	issuer := auth.NewTokenIssuer(cfg.Session.JWTSecret)
	router := s.setupRouter(svcs, issuer, logger)

	return apphttp.ServeAndWait(ctx, router, logger, &cfg.Server)
}

func (s *Server) openRedis(ctx context.Context, logger *zap.Logger) (redis.UniversalClient, error) {
	if s.cfg.Redis.URL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(s.cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	logger.Info("Connected to redis", zap.String("addr", opts.Addr))
	return client, nil
}

func (s *Server) buildServices(
	ctx context.Context,
	db *bun.DB,
	redisClient redis.UniversalClient,
	publisher message.Publisher,
	logger *zap.Logger,
) (*services, error) {
	cfg := s.cfg

	networks, err := network.FromConfig(cfg.Networks)
	if err != nil {
		return nil, fmt.Errorf("networks: %w", err)
	}
	custody, err := keys.NewCustody(networks)
	if err != nil {
		return nil, err
	}
	keyring, err := keys.DIDKeyring(networks)
	if err != nil {
		return nil, err
	}
	for _, n := range networks.Ordered() {
		acct, _ := custody.Account(n.Name)
		logger.Info("Network configured",
			zap.String("network", n.Name.String()),
			zap.String("endpoint", n.Endpoint),
			zap.String("app_did", n.AppDID),
			zap.String("custodial_address", acct.Address()),
		)
	}

	dialer := chain.NewDialer(networks, logger)
	res := resolver.New(dialer, networks, logger)
	notifier := events.NewWatermillNotifier(publisher, logger)

	appKey, err := s.encryptionKey()
	if err != nil {
		return nil, err
	}
	appNet, _ := cfg.Network(cfg.Session.AppNetwork)
	resolveCtx, cancel := context.WithTimeout(ctx, appKeyResolveTimeout)
	defer cancel()
	appKeyURI, err := resolveAppKeyURI(resolveCtx, res, network.Name(appNet.Name), appNet.AppDID, appKey)
	if err != nil {
		logger.Warn("Application key agreement unavailable, challenges are disabled",
			zap.String("network", cfg.Session.AppNetwork),
			zap.Error(err),
		)
	}

	var registry challenge.Registry
	if redisClient != nil {
		registry = challenge.NewRedisRegistry(redisClient)
	} else {
		registry = challenge.NewMemoryRegistry(cfg.Session.ChallengeCapacity)
	}
	challenges := challenge.NewService(challenge.Config{
		AppName:   cfg.Session.AppName,
		AppKeyURI: appKeyURI,
		TTL:       cfg.Session.ChallengeTTL,
	}, registry, challenge.NewBoxVerifier(res, appKey), logger)

	anchors := anchorstore.NewStore(db)
	preparer := transaction.NewPreparer(dialer, networks, custody, logger)
	submitter := transaction.NewSubmitter(dialer, networks, custody, keyring, transaction.Options{
		Timeout:          cfg.Submission.Timeout,
		WaitFinalization: cfg.Submission.WaitFinalization,
	}, logger)
	anchorer := attestation.NewAnchorer(res, keyring, submitter, logger)

	session := userservice.NewService(
		challenges,
		userstore.NewStore(db),
		auth.NewTokenIssuer(cfg.Session.JWTSecret),
		notifier,
		cfg.Session.DefaultRole,
		logger,
	)

	return &services{
		session:      userservice.NewLog(session, logger),
		ctypes:       ctypeservice.NewLog(ctypeservice.NewService(preparer, submitter, anchors, notifier, logger), logger),
		attestations: attestationservice.NewLog(attestationservice.NewService(anchorer, networks, anchors, notifier, logger), logger),
		networks:     networkservice.NewLog(networkservice.NewService(dialer, networks, custody, logger), logger),
	}, nil
}

// encryptionKey derives the application's key-agreement secret from the configured seed,
// or from the custodial mnemonic of the application network.
func (s *Server) encryptionKey() (*keys.EncryptionKey, error) {
	phrase := s.cfg.Session.KeyAgreementSeed
	if phrase == "" {
		appNet, _ := s.cfg.Network(s.cfg.Session.AppNetwork)
		phrase = appNet.Mnemonic
	}
	ek, err := keys.DeriveEncryptionKey(phrase)
	if err != nil {
		return nil, fmt.Errorf("application key agreement: %w", err)
	}
	return ek, nil
}

func (s *Server) setupRouter(svcs *services, issuer *auth.TokenIssuer, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if !s.cfg.Metrics.Disabled {
		r.Handle(s.cfg.Metrics.Path, promhttp.Handler())
	}

	userservice.RegisterRoutes(r, svcs.session, issuer, logger)
	ctypeservice.RegisterRoutes(r, svcs.ctypes, issuer, logger)
	attestationservice.RegisterRoutes(r, svcs.attestations, issuer, logger)
	networkservice.RegisterRoutes(r, svcs.networks, logger)

	return r
}
