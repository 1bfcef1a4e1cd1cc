// Package gameconfig owns the platform configuration: validated writes and
// copy-on-read snapshots.
package gameconfig

import (
	"context"
	"sync/atomic"

	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/logger"
)

// Provider hands out configuration snapshots
type Provider interface {
	Get() domain.PlatformConfig
}

// Service reads and replaces the platform configuration
type Service interface {
	Provider
	Update(ctx context.Context, caller string, cfg domain.PlatformConfig) error
}

type service struct {
	current atomic.Pointer[domain.PlatformConfig]
	adminID string
}

// NewService validates the initial configuration and serves it. Only adminID
// may replace it afterwards.
func NewService(initial domain.PlatformConfig, adminID string) (Service, error) {
	if err := Validate(initial); err != nil {
		return nil, err
	}
	s := &service{adminID: adminID}
	s.current.Store(&initial)
	return s, nil
}

// Get returns a copy of the configuration in force. PlatformConfig holds only
// values and fixed-size arrays, so the copy shares nothing with the store.
func (s *service) Get() domain.PlatformConfig {
	return *s.current.Load()
}

func (s *service) Update(ctx context.Context, caller string, cfg domain.PlatformConfig) error {
	log := logger.FromContext(ctx)

	if s.adminID == "" || caller != s.adminID {
		log.Warn(LogMsgConfigUpdateDenied, "caller", caller)
		return domain.ErrNotAdmin
	}
	if err := Validate(cfg); err != nil {
		log.Warn(LogMsgConfigUpdateDenied, "caller", caller, "error", err)
		return err
	}

	s.current.Store(&cfg)
	log.Info(LogMsgConfigUpdated, "caller", caller, "commission_bps", cfg.CommissionBPS, "paused", cfg.Paused)
	return nil
}

// Static is a fixed Provider, handy where configuration never changes
type Static domain.PlatformConfig

// Get returns the fixed configuration
func (s Static) Get() domain.PlatformConfig {
	return domain.PlatformConfig(s)
}
