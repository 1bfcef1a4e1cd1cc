package gameconfig

import (
	"fmt"

	"github.com/osse101/DegenBox_Go/internal/domain"
)

// Validate checks every invariant a platform configuration must hold before it
// can be stored. Failures wrap domain.ErrInvalidConfig.
func Validate(cfg domain.PlatformConfig) error {
	if cfg.CommissionBPS > domain.MaxCommissionBPS {
		return invalid(ErrMsgCommissionTooHigh)
	}
	if cfg.BaseLuck > cfg.MaxLuck {
		return invalid(ErrMsgBaseAboveMax)
	}
	if cfg.LuckTimeIntervalSeconds < 0 {
		return invalid(ErrMsgNegativeInterval)
	}
	if cfg.RevealWindowSeconds <= 0 {
		return invalid(ErrMsgRevealWindow)
	}
	if cfg.RefundGracePeriodSeconds < 0 {
		return invalid(ErrMsgNegativeGrace)
	}

	for p := domain.PresetID(0); p < domain.PresetCount; p++ {
		table, err := cfg.Table(p)
		if err != nil {
			return err
		}
		if err := validateTable(table); err != nil {
			return fmt.Errorf("preset %d: %w", p, err)
		}
	}
	return nil
}

func validateTable(table domain.GameTable) error {
	if table.Tier1MaxLuck > table.Tier2MaxLuck {
		return invalid(ErrMsgBoundaryOrder)
	}
	for i, band := range table.Bands {
		if band.Sum() > domain.BasisPoints {
			return fmt.Errorf("band %d: %w", i+1, invalid(ErrMsgBandOverAllocated))
		}
	}
	return nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidConfig, msg)
}
