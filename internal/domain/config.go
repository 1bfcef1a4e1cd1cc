package domain

// Lifecycle timing and limits
const (
	DefaultRevealWindowSeconds      int64  = 3600
	DefaultRefundGracePeriodSeconds int64  = 120
	MaxCommissionBPS                uint16 = 5000
	BasisPoints                     uint32 = 10000
	BandCount                              = 3
)

// BandOdds holds the explicit tier probabilities of one luck band, in basis points.
// Jackpot probability is the remainder up to 10000.
type BandOdds struct {
	DudBP       uint16 `json:"dud_bp"`
	RebateBP    uint16 `json:"rebate_bp"`
	BreakEvenBP uint16 `json:"breakeven_bp"`
	ProfitBP    uint16 `json:"profit_bp"`
}

// Sum returns the total of the explicit tiers
func (b BandOdds) Sum() uint32 {
	return uint32(b.DudBP) + uint32(b.RebateBP) + uint32(b.BreakEvenBP) + uint32(b.ProfitBP)
}

// JackpotBP returns the remainder probability, or 0 if the band is over-allocated
func (b BandOdds) JackpotBP() uint32 {
	sum := b.Sum()
	if sum >= BasisPoints {
		return 0
	}
	return BasisPoints - sum
}

// Width returns the probability width of an explicit tier
func (b BandOdds) Width(t Tier) uint32 {
	switch t {
	case TierDud:
		return uint32(b.DudBP)
	case TierRebate:
		return uint32(b.RebateBP)
	case TierBreakEven:
		return uint32(b.BreakEvenBP)
	case TierProfit:
		return uint32(b.ProfitBP)
	case TierJackpot:
		return b.JackpotBP()
	}
	return 0
}

// PayoutTable holds payout multipliers in basis points of the purchase price.
// Dud always pays 0.
type PayoutTable struct {
	RebateBP    uint32 `json:"payout_rebate_bp"`
	BreakEvenBP uint32 `json:"payout_breakeven_bp"`
	ProfitBP    uint32 `json:"payout_profit_bp"`
	JackpotBP   uint32 `json:"payout_jackpot_bp"`
}

// ForTier returns the multiplier for a tier
func (p PayoutTable) ForTier(t Tier) uint32 {
	switch t {
	case TierRebate:
		return p.RebateBP
	case TierBreakEven:
		return p.BreakEvenBP
	case TierProfit:
		return p.ProfitBP
	case TierJackpot:
		return p.JackpotBP
	}
	return 0
}

// GameTable is one preset: band boundaries, per-band odds and shared payouts
type GameTable struct {
	Tier1MaxLuck uint8               `json:"tier1_max_luck"`
	Tier2MaxLuck uint8               `json:"tier2_max_luck"`
	Bands        [BandCount]BandOdds `json:"bands"`
	Payouts      PayoutTable         `json:"payouts"`
}

// Band returns the zero-based band index for a luck score
func (g GameTable) Band(luck uint8) int {
	switch {
	case luck <= g.Tier1MaxLuck:
		return 0
	case luck <= g.Tier2MaxLuck:
		return 1
	default:
		return 2
	}
}

// OddsFor returns the probability band for a luck score
func (g GameTable) OddsFor(luck uint8) BandOdds {
	return g.Bands[g.Band(luck)]
}

func (g GameTable) hasBoundaries() bool {
	return g.Tier1MaxLuck != 0 || g.Tier2MaxLuck != 0
}

// PlatformConfig is an immutable snapshot of platform tunables.
// Values are copied on read; holders never observe later writes.
type PlatformConfig struct {
	Paused                   bool                   `json:"paused"`
	BaseLuck                 uint8                  `json:"base_luck"`
	MaxLuck                  uint8                  `json:"max_luck"`
	LuckTimeIntervalSeconds  int64                  `json:"luck_time_interval"`
	CommissionBPS            uint16                 `json:"commission_bps"`
	RevealWindowSeconds      int64                  `json:"reveal_window_seconds"`
	RefundGracePeriodSeconds int64                  `json:"refund_grace_period_seconds"`
	Presets                  [PresetCount]GameTable `json:"presets"`
}

// Table returns the game table for a preset. Named presets without their own
// boundaries use the default table's boundaries.
func (c PlatformConfig) Table(p PresetID) (GameTable, error) {
	if !p.Valid() {
		return GameTable{}, ErrInvalidPreset
	}
	table := c.Presets[p]
	if p != PresetDefault && !table.hasBoundaries() {
		table.Tier1MaxLuck = c.Presets[PresetDefault].Tier1MaxLuck
		table.Tier2MaxLuck = c.Presets[PresetDefault].Tier2MaxLuck
	}
	return table, nil
}

// EffectiveLuckInterval returns the project override when positive, else the platform value
func (c PlatformConfig) EffectiveLuckInterval(override int64) int64 {
	if override > 0 {
		return override
	}
	return c.LuckTimeIntervalSeconds
}

// DefaultGameTable returns the production table. Dud is disabled in every band.
func DefaultGameTable() GameTable {
	return GameTable{
		Tier1MaxLuck: 5,
		Tier2MaxLuck: 13,
		Bands: [BandCount]BandOdds{
			{DudBP: 0, RebateBP: 7200, BreakEvenBP: 1700, ProfitBP: 900},
			{DudBP: 0, RebateBP: 5700, BreakEvenBP: 2600, ProfitBP: 1500},
			{DudBP: 0, RebateBP: 4400, BreakEvenBP: 3400, ProfitBP: 2000},
		},
		Payouts: PayoutTable{
			RebateBP:    5000,
			BreakEvenBP: 10000,
			ProfitBP:    15000,
			JackpotBP:   40000,
		},
	}
}

// DefaultPlatformConfig returns production tunables with all presets set to the default table
func DefaultPlatformConfig() PlatformConfig {
	table := DefaultGameTable()
	return PlatformConfig{
		BaseLuck:                 5,
		MaxLuck:                  60,
		LuckTimeIntervalSeconds:  10800,
		CommissionBPS:            500,
		RevealWindowSeconds:      DefaultRevealWindowSeconds,
		RefundGracePeriodSeconds: DefaultRefundGracePeriodSeconds,
		Presets:                  [PresetCount]GameTable{table, table, table, table},
	}
}
