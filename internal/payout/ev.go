package payout

import (
	"fmt"

	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/utils"
)

// BandSummary is the expected return of one luck band
type BandSummary struct {
	Band        int    `json:"band"`
	JackpotBP   uint32 `json:"jackpot_bp"`
	ExpectedBP  uint64 `json:"expected_value_bp"`
	HouseEdgeBP int64  `json:"house_edge_bp"`
}

// ExpectedValueBP returns the expected payout of a band as basis points of the
// price, floor(sum(width * payout) / 10000).
func ExpectedValueBP(odds domain.BandOdds, payouts domain.PayoutTable) uint64 {
	var total uint64
	for _, tier := range []domain.Tier{domain.TierRebate, domain.TierBreakEven, domain.TierProfit, domain.TierJackpot} {
		total += uint64(odds.Width(tier)) * uint64(payouts.ForTier(tier))
	}
	return total / uint64(domain.BasisPoints)
}

// Summarize returns the expected return per band of a game table
func Summarize(table domain.GameTable) []BandSummary {
	out := make([]BandSummary, 0, domain.BandCount)
	for i, odds := range table.Bands {
		ev := ExpectedValueBP(odds, table.Payouts)
		out = append(out, BandSummary{
			Band:        i + 1,
			JackpotBP:   odds.JackpotBP(),
			ExpectedBP:  ev,
			HouseEdgeBP: int64(domain.BasisPoints) - int64(ev),
		})
	}
	return out
}

// ExpectedReserve estimates the liability of unopened boxes as
// ceil(price * unopened * EV / 10000), where EV is the richest band's so the
// estimate never undershoots any luck level.
func ExpectedReserve(price, unopened uint64, table domain.GameTable) (uint64, error) {
	exposure, err := mulChecked(price, unopened)
	if err != nil {
		return 0, err
	}
	var ev uint64
	for _, odds := range table.Bands {
		ev = max(ev, ExpectedValueBP(odds, table.Payouts))
	}
	r, err := utils.MulDivCeil(exposure, ev, utils.BasisPointsDenominator)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextReserveOverflow, domain.ErrArithmeticOverflow)
	}
	return r, nil
}

// MaxLiability is the most the vault can still owe for one box.
// Revealed boxes owe their stored reward. Committed boxes owe the larger of the
// snapshot preset's jackpot and the refund. Uncommitted boxes are priced
// against the largest jackpot across all presets.
func MaxLiability(box *domain.Box, cfg domain.PlatformConfig) (uint64, error) {
	if box.Settled {
		return 0, nil
	}
	if box.Revealed {
		return box.RewardAmount, nil
	}

	var jackpotBP uint32
	if box.RandomnessCommitted {
		table, err := cfg.Table(box.PresetSnapshot)
		if err != nil {
			return 0, err
		}
		jackpotBP = table.Payouts.JackpotBP
	} else {
		for p := domain.PresetID(0); p < domain.PresetCount; p++ {
			table, err := cfg.Table(p)
			if err != nil {
				return 0, err
			}
			jackpotBP = max(jackpotBP, table.Payouts.JackpotBP)
		}
	}

	jackpot, err := Reward(box.PurchasedPrice, jackpotBP)
	if err != nil {
		return 0, err
	}
	return max(jackpot, box.RefundAmount()), nil
}

func mulChecked(a, b uint64) (uint64, error) {
	r, err := utils.MulDivFloor(a, b, 1)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextReserveOverflow, domain.ErrArithmeticOverflow)
	}
	return r, nil
}
