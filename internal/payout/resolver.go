// Package payout turns a luck score and a uniform sample into a tier and reward.
// Everything here is integer basis-point math.
package payout

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/utils"
)

// Outcome is the result of resolving one sample
type Outcome struct {
	Tier      domain.Tier
	Reward    uint64
	IsJackpot bool
	RandomBP  uint16
}

// ToBasisPoints maps the first 8 bytes of an oracle value (little endian) to
// floor(raw * 10000 / 2^64), which is always in [0, 10000).
func ToBasisPoints(raw []byte) (uint16, error) {
	if len(raw) < RandomBytesLen {
		return 0, ErrShortRandomness
	}
	v := binary.LittleEndian.Uint64(raw[:RandomBytesLen])
	hi, _ := bits.Mul64(v, utils.BasisPointsDenominator)
	return uint16(hi), nil
}

// SelectTier walks Dud, Rebate, BreakEven, Profit with a running cumulative
// bound and returns the first tier whose inclusive upper bound reaches the
// sample. A zero-width tier still claims a sample equal to the bound before
// it, so a zero Dud width claims sample 0. Anything left is Jackpot.
func SelectTier(odds domain.BandOdds, randomBP uint16) domain.Tier {
	var cumulative uint32
	for _, tier := range domain.WalkOrder {
		cumulative += odds.Width(tier)
		if uint32(randomBP) <= cumulative {
			return tier
		}
	}
	return domain.TierJackpot
}

// Reward returns floor(price * multiplier / 10000)
func Reward(price uint64, multiplierBP uint32) (uint64, error) {
	r, err := utils.ApplyBasisPoints(price, uint64(multiplierBP))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextRewardOverflow, domain.ErrArithmeticOverflow)
	}
	return r, nil
}

// Resolve selects the band for luck from the preset's table, picks a tier for
// randomBP and prices it against price. cfg must be the snapshot in force; the
// resolver never reads live configuration.
func Resolve(luck uint8, randomBP uint16, price uint64, cfg domain.PlatformConfig, preset domain.PresetID) (Outcome, error) {
	if uint32(randomBP) >= domain.BasisPoints {
		return Outcome{}, ErrSampleOutOfRange
	}

	table, err := cfg.Table(preset)
	if err != nil {
		return Outcome{}, err
	}

	odds := table.OddsFor(luck)
	if odds.Sum() > domain.BasisPoints {
		return Outcome{}, fmt.Errorf("%w: %s", domain.ErrInvalidConfig, ErrMsgBandOverAllocated)
	}

	tier := SelectTier(odds, randomBP)
	reward, err := Reward(price, table.Payouts.ForTier(tier))
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Tier:      tier,
		Reward:    reward,
		IsJackpot: tier == domain.TierJackpot,
		RandomBP:  randomBP,
	}, nil
}
