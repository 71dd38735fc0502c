package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const serviceName = "NetworkService"

type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the network Service.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{svc: svc, logger: logger}
}

func (ls *logService) List(ctx context.Context) (statuses []Status, err error) {
	start := time.Now()
	defer func() {
		fields := []zap.Field{
			zap.String("service", serviceName),
			zap.String("method", "List"),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			ls.logger.Error("List failed", append(fields, zap.Error(err))...)
			return
		}
		unreachable := 0
		for _, st := range statuses {
			if !st.Reachable {
				unreachable++
			}
		}
		ls.logger.Debug("List completed", append(fields,
			zap.Int("networks", len(statuses)),
			zap.Int("unreachable", unreachable))...)
	}()
	return ls.svc.List(ctx)
}
