// Package store holds the idempotent persistence adapters of the
// ingest pipeline. Every write goes through the bounded-retry policy so
// transient database failures never need per-call-site backoff logic.
package store

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fuyurina/sellerhub/internal/retry"
)

type Store struct {
	db     *gorm.DB
	policy retry.Policy
	logger *zap.Logger
}

// New creates a store with the given retry policy for its writes
func New(db *gorm.DB, policy retry.Policy, logger *zap.Logger) *Store {
	return &Store{
		db:     db,
		policy: policy,
		logger: logger,
	}
}

// DB exposes the underlying handle for health checks
func (s *Store) DB() *gorm.DB {
	return s.db
}
