package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/chainsafe/kilt-attester/internal/metrics"
	apperrors "github.com/chainsafe/kilt-attester/pkg/app/errors"
	"github.com/chainsafe/kilt-attester/pkg/auth"
	"github.com/chainsafe/kilt-attester/pkg/challenge"
	"github.com/chainsafe/kilt-attester/pkg/events"
	"github.com/chainsafe/kilt-attester/pkg/user"
	"github.com/chainsafe/kilt-attester/pkg/userstore"
)

// Store is the narrow data-access interface for the session service.
//
//go:generate mockery --name Store --output mocks --outpkg mocks --filename mock_store.go --with-expecter
type Store interface {
	GetOrCreateUser(ctx context.Context, did string, roles ...string) (*user.User, bool, error)
	GetUser(ctx context.Context, did string) (*user.User, error)
}

// Service defines the session business logic: challenge handshake, login and profile lookup.
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	Challenge(ctx context.Context) (*challenge.SessionRequest, error)
	Login(ctx context.Context, req *user.LoginRequest) (*user.LoginResponse, error)
	Me(ctx context.Context, did string) (*user.User, error)
}

type sessionService struct {
	challenges  challenge.Service
	store       Store
	tokens      *auth.TokenIssuer
	notifier    events.Notifier
	defaultRole string
	logger      *zap.Logger
}

// NewService creates a new session service
func NewService(
	challenges challenge.Service,
	store Store,
	tokens *auth.TokenIssuer,
	notifier events.Notifier,
	defaultRole string,
	logger *zap.Logger,
) Service {
	if defaultRole == "" {
		defaultRole = user.DefaultRole
	}
	return &sessionService{
		challenges:  challenges,
		store:       store,
		tokens:      tokens,
		notifier:    notifier,
		defaultRole: defaultRole,
		logger:      logger,
	}
}

func (s *sessionService) Challenge(ctx context.Context) (*challenge.SessionRequest, error) {
	return s.challenges.IssueChallenge(ctx)
}

// Login verifies the handshake, then loads or creates the user and issues an access
// token carrying the user's primary role.
func (s *sessionService) Login(ctx context.Context, req *user.LoginRequest) (*user.LoginResponse, error) {
	resp, err := s.login(ctx, req)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, err
	}
	metrics.LoginsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return resp, nil
}

func (s *sessionService) login(ctx context.Context, req *user.LoginRequest) (*user.LoginResponse, error) {
	ident, err := s.challenges.Verify(ctx, &req.Request, &req.Response, req.DID)
	if err != nil {
		return nil, err
	}

	usr, created, err := s.store.GetOrCreateUser(ctx, ident.DID.String(), s.defaultRole)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if created {
		s.logger.Info("new user", zap.String("did", usr.DID))
		s.notifier.UserCreated(ctx, usr)
	}

	token, claims, err := s.tokens.Issue(ident.DID, usr.PrimaryRole(s.defaultRole))
	if err != nil {
		return nil, apperrors.GeneralError(err)
	}

	return &user.LoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      usr,
	}, nil
}

func (s *sessionService) Me(ctx context.Context, did string) (*user.User, error) {
	usr, err := s.store.GetUser(ctx, did)
	if errors.Is(err, userstore.ErrUserNotFound) {
		return nil, apperrors.ResourceNotFoundError(err, "user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return usr, nil
}
