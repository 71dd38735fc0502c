package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/kilt-attester/pkg/anchorstore"
)

const serviceName = "AttestationService"

type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the attestation Service. Claim contents are not logged.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

func (ls *logService) Attest(ctx context.Context, req *AttestRequest) (resp *AttestResponse, err error) {
	start := time.Now()

	ls.logger.Info("Attest started",
		zap.String("service", serviceName),
		zap.String("method", "Attest"),
		zap.String("owner", req.Claim.Owner),
		zap.String("ctype_hash", req.Claim.CTypeHash),
		zap.Int("statements", len(req.Claim.Contents)),
		zap.String("network", string(req.Network)),
	)

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("Attest failed",
				zap.String("service", serviceName),
				zap.String("method", "Attest"),
				zap.String("owner", req.Claim.Owner),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			ls.logger.Info("Attest completed",
				zap.String("service", serviceName),
				zap.String("method", "Attest"),
				zap.String("claim_hash", resp.Credential.RootHash),
				zap.String("network", string(resp.Network)),
				zap.String("tx_hash", resp.Result.TransactionHash),
				zap.Duration("duration", duration),
			)
		}
	}()

	return ls.svc.Attest(ctx, req)
}

func (ls *logService) Get(ctx context.Context, claimHash string) (rec *anchorstore.AttestationRecord, err error) {
	defer func() {
		if err != nil {
			ls.logger.Warn("Get failed",
				zap.String("service", serviceName),
				zap.String("method", "Get"),
				zap.String("claim_hash", claimHash),
				zap.Error(err),
			)
		}
	}()
	return ls.svc.Get(ctx, claimHash)
}
