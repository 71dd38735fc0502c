package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/kilt-attester/pkg/anchorstore"
	"github.com/chainsafe/kilt-attester/pkg/transaction"
)

const serviceName = "CTypeService"

type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the CType Service.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

func (ls *logService) Create(ctx context.Context, owner string, req *CreateRequest) (resp *CreateResponse, err error) {
	start := time.Now()

	ls.logger.Info("Create started",
		zap.String("service", serviceName),
		zap.String("method", "Create"),
		zap.String("owner", owner),
		zap.String("network", string(req.Network)),
		zap.String("payment_type", string(req.PaymentType)),
		zap.String("signing_type", string(req.SigningType)),
	)

	defer func() {
		fields := []zap.Field{
			zap.String("service", serviceName),
			zap.String("method", "Create"),
			zap.String("owner", owner),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			ls.logger.Error("Create failed", append(fields, zap.Error(err))...)
			return
		}
		fields = append(fields, zap.String("ctype_id", resp.CTypeID), zap.Bool("awaiting_signature", resp.Envelope != nil))
		if resp.Result != nil {
			fields = append(fields, zap.String("tx_hash", resp.Result.TransactionHash))
		}
		ls.logger.Info("Create completed", fields...)
	}()

	return ls.svc.Create(ctx, owner, req)
}

func (ls *logService) Submit(ctx context.Context, owner string, req *SubmitRequest) (res *transaction.SubmissionResult, err error) {
	start := time.Now()

	ls.logger.Info("Submit started",
		zap.String("service", serviceName),
		zap.String("method", "Submit"),
		zap.String("owner", owner),
		zap.String("ctype_id", req.Envelope.CTypeID),
		zap.String("network", string(req.Envelope.Network)),
		zap.String("submitter", req.Envelope.Submitter),
	)

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("Submit failed",
				zap.String("service", serviceName),
				zap.String("method", "Submit"),
				zap.String("ctype_id", req.Envelope.CTypeID),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			ls.logger.Info("Submit completed",
				zap.String("service", serviceName),
				zap.String("method", "Submit"),
				zap.String("ctype_id", req.Envelope.CTypeID),
				zap.String("tx_hash", res.TransactionHash),
				zap.Uint64("block_number", res.BlockNumber),
				zap.Duration("duration", duration),
			)
		}
	}()

	return ls.svc.Submit(ctx, owner, req)
}

func (ls *logService) Get(ctx context.Context, id string) (rec *anchorstore.CTypeRecord, err error) {
	defer func() {
		if err != nil {
			ls.logger.Warn("Get failed",
				zap.String("service", serviceName),
				zap.String("method", "Get"),
				zap.String("ctype_id", id),
				zap.Error(err),
			)
		}
	}()
	return ls.svc.Get(ctx, id)
}
