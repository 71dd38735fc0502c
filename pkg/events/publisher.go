package events

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/chainsafe/kilt-attester/pkg/config"
)

// Publisher drivers
const (
	DriverGoChannel = "gochannel"
	DriverRedis     = "redis"
)

// NewPublisher builds the watermill publisher selected by cfg.Driver.
// The redis driver needs a client.
func NewPublisher(cfg config.EventsConfig, client redis.UniversalClient, logger *zap.Logger) (message.Publisher, error) {
	wlogger := NewZapLoggerAdapter(logger)

	switch cfg.Driver {
	case "", DriverGoChannel:
		return gochannel.NewGoChannel(gochannel.Config{}, wlogger), nil
	case DriverRedis:
		if client == nil {
			return nil, fmt.Errorf("events driver %q requires redis.url", cfg.Driver)
		}
		pub, err := redisstream.NewPublisher(redisstream.PublisherConfig{Client: client}, wlogger)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis stream publisher: %w", err)
		}
		return pub, nil
	default:
		return nil, fmt.Errorf("unknown events driver %q", cfg.Driver)
	}
}

// zapLoggerAdapter routes watermill logs through zap.
type zapLoggerAdapter struct {
	logger *zap.Logger
}

// NewZapLoggerAdapter wraps a zap logger as a watermill.LoggerAdapter.
func NewZapLoggerAdapter(logger *zap.Logger) watermill.LoggerAdapter {
	return &zapLoggerAdapter{logger: logger.Named("watermill")}
}

func (a *zapLoggerAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.logger.Error(msg, append(zapFields(fields), zap.Error(err))...)
}

func (a *zapLoggerAdapter) Info(msg string, fields watermill.LogFields) {
	a.logger.Info(msg, zapFields(fields)...)
}

func (a *zapLoggerAdapter) Debug(msg string, fields watermill.LogFields) {
	a.logger.Debug(msg, zapFields(fields)...)
}

func (a *zapLoggerAdapter) Trace(msg string, fields watermill.LogFields) {
	a.logger.Debug(msg, zapFields(fields)...)
}

func (a *zapLoggerAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &zapLoggerAdapter{logger: a.logger.With(zapFields(fields)...)}
}

func zapFields(fields watermill.LogFields) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}
