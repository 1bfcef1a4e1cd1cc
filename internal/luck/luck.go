// Package luck computes the holding-time luck score frozen into a box at commit.
package luck

import (
	"math"

	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/utils"
)

// Calculate returns min(base + floor(hold/interval), max).
// A non-positive interval disables accrual. The bonus is clamped to 255 before
// narrowing and the addition saturates, so arbitrarily long holds never wrap.
func Calculate(holdSeconds, interval int64, baseLuck, maxLuck uint8) uint8 {
	var bonus uint8
	if interval > 0 && holdSeconds > 0 {
		steps := holdSeconds / interval
		if steps > math.MaxUint8 {
			steps = math.MaxUint8
		}
		bonus = uint8(steps)
	}

	score := utils.SaturatingAddUint8(baseLuck, bonus)
	if score > maxLuck {
		return maxLuck
	}
	return score
}

// ForCommit computes the luck of a box committing at holdSeconds after purchase
// under the given platform snapshot and project override.
func ForCommit(holdSeconds int64, cfg domain.PlatformConfig, projectOverride int64) uint8 {
	return Calculate(holdSeconds, cfg.EffectiveLuckInterval(projectOverride), cfg.BaseLuck, cfg.MaxLuck)
}
