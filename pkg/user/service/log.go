package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/kilt-attester/pkg/challenge"
	"github.com/chainsafe/kilt-attester/pkg/user"
)

const serviceName = "SessionService"

const ciphertextDisplaySize = 16

// logService wraps Service with automatic logging of all method calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the session Service.
// Tokens are never logged and ciphertexts are redacted.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

func (ls *logService) Challenge(ctx context.Context) (req *challenge.SessionRequest, err error) {
	start := time.Now()
	defer func() {
		fields := []zap.Field{
			zap.String("service", serviceName),
			zap.String("method", "Challenge"),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			ls.logger.Error("Challenge failed", append(fields, zap.Error(err))...)
			return
		}
		ls.logger.Debug("Challenge completed", fields...)
	}()

	return ls.svc.Challenge(ctx)
}

func (ls *logService) Login(ctx context.Context, req *user.LoginRequest) (resp *user.LoginResponse, err error) {
	start := time.Now()

	ls.logger.Info("Login started",
		zap.String("service", serviceName),
		zap.String("method", "Login"),
		zap.String("did", req.DID),
		zap.String("encryption_key_uri", req.Response.EncryptionKeyURI),
		zap.String("encrypted_challenge", redactCiphertext(req.Response.EncryptedChallenge)),
	)

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("Login failed",
				zap.String("service", serviceName),
				zap.String("method", "Login"),
				zap.String("did", req.DID),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			ls.logger.Info("Login completed",
				zap.String("service", serviceName),
				zap.String("method", "Login"),
				zap.String("did", resp.User.DID),
				zap.Strings("roles", resp.User.Roles),
				zap.Time("expires_at", resp.ExpiresAt),
				zap.Duration("duration", duration),
			)
		}
	}()

	return ls.svc.Login(ctx, req)
}

func (ls *logService) Me(ctx context.Context, did string) (usr *user.User, err error) {
	defer func() {
		if err != nil {
			ls.logger.Warn("Me failed",
				zap.String("service", serviceName),
				zap.String("method", "Me"),
				zap.String("did", did),
				zap.Error(err),
			)
		}
	}()
	return ls.svc.Me(ctx, did)
}

// redactCiphertext shows only the head and the length of a hex payload.
func redactCiphertext(s string) string {
	if s == "" {
		return "<empty>"
	}
	if len(s) > ciphertextDisplaySize {
		return fmt.Sprintf("%s... (%d chars)", s[:8], len(s))
	}
	return fmt.Sprintf("<%d chars>", len(s))
}
