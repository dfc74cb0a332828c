package storage

import (
	"context"

	"careerai/internal/config"
	"careerai/internal/logger"
)

// Storage aggregates every stateful dependency. Components that fail to
// initialize are left nil and logged; the analysis pipeline itself has no
// hard dependency on any of them, so a half-initialized Storage still serves
// requests with reduced features.
type Storage struct {
	MySQL    *MySQL
	Redis    *Redis
	MinIO    *MinIO
	RabbitMQ *RabbitMQ
}

// NewStorage initializes whatever it can reach. Only a total failure of
// every component is worth stopping startup for, and even that is the
// caller's decision.
func NewStorage(ctx context.Context, cfg *config.Config) *Storage {
	s := &Storage{}

	if db, err := NewMySQL(&cfg.MySQL); err != nil {
		logger.Warn().Err(err).Msg("mysql unavailable, persistence disabled")
	} else {
		s.MySQL = db
	}

	if r, err := NewRedis(ctx, &cfg.Redis); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, quotas and dedupe disabled")
	} else {
		s.Redis = r
	}

	if m, err := NewMinIO(ctx, &cfg.MinIO); err != nil {
		logger.Warn().Err(err).Msg("minio unavailable, original files will not be kept")
	} else {
		s.MinIO = m
	}

	if mq, err := NewRabbitMQ(&cfg.RabbitMQ); err != nil {
		logger.Warn().Err(err).Msg("rabbitmq unavailable, events will not be published")
	} else {
		s.RabbitMQ = mq
	}

	return s
}

// Close releases every live component.
func (s *Storage) Close() {
	if s.MySQL != nil {
		if err := s.MySQL.Close(); err != nil {
			logger.Warn().Err(err).Msg("close mysql")
		}
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			logger.Warn().Err(err).Msg("close redis")
		}
	}
	if s.RabbitMQ != nil {
		if err := s.RabbitMQ.Close(); err != nil {
			logger.Warn().Err(err).Msg("close rabbitmq")
		}
	}
}
