package payout

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DegenBox_Go/internal/domain"
)

func TestExpectedValueBP_DefaultTable(t *testing.T) {
	table := domain.DefaultGameTable()

	// band 1: 7200*5000 + 1700*10000 + 900*15000 + 200*40000 = 74_500_000 -> 7450
	assert.Equal(t, uint64(7450), ExpectedValueBP(table.Bands[0], table.Payouts))
	// band 3: 4400*5000 + 3400*10000 + 2000*15000 + 200*40000 = 94_000_000 -> 9400
	assert.Equal(t, uint64(9400), ExpectedValueBP(table.Bands[2], table.Payouts))

	summary := Summarize(table)
	require.Len(t, summary, domain.BandCount)
	assert.Equal(t, 1, summary[0].Band)
	assert.Equal(t, int64(2550), summary[0].HouseEdgeBP)
	assert.Equal(t, uint32(200), summary[2].JackpotBP)
}

func TestExpectedReserve(t *testing.T) {
	table := domain.DefaultGameTable()

	r, err := ExpectedReserve(1_000_000, 3, table)
	require.NoError(t, err)
	assert.Equal(t, uint64(2_820_000), r)

	// rounds up
	r, err = ExpectedReserve(1, 1, table)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), r)

	r, err = ExpectedReserve(1_000_000, 0, table)
	require.NoError(t, err)
	assert.Zero(t, r)

	_, err = ExpectedReserve(math.MaxUint64, 2, table)
	assert.ErrorIs(t, err, domain.ErrArithmeticOverflow)
}

func TestExpectedReserve_UsesRichestBand(t *testing.T) {
	table := domain.DefaultGameTable()
	// band 1 pays all jackpot: EV 40000, well above band 3's 9400
	table.Bands[0] = domain.BandOdds{}
	require.Equal(t, uint64(40000), ExpectedValueBP(table.Bands[0], table.Payouts))

	r, err := ExpectedReserve(1_000_000, 3, table)
	require.NoError(t, err)
	assert.Equal(t, uint64(12_000_000), r)
}

func TestMaxLiability(t *testing.T) {
	cfg := domain.DefaultPlatformConfig()
	cfg.Presets[domain.PresetTwo].Payouts.JackpotBP = 100000
	now := time.Now()

	tests := []struct {
		name     string
		box      domain.Box
		expected uint64
	}{
		{
			name:     "settled owes nothing",
			box:      domain.Box{PurchasedPrice: 100, Settled: true, Revealed: true, RewardAmount: 50},
			expected: 0,
		},
		{
			name:     "revealed owes stored reward",
			box:      domain.Box{PurchasedPrice: 100, Revealed: true, RewardAmount: 150},
			expected: 150,
		},
		{
			name:     "committed uses snapshot jackpot",
			box:      domain.Box{PurchasedPrice: 100, CommissionPaid: 5, RandomnessCommitted: true, CommittedAt: &now},
			expected: 400,
		},
		{
			name:     "uncommitted uses largest jackpot",
			box:      domain.Box{PurchasedPrice: 100, CommissionPaid: 5},
			expected: 1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MaxLiability(&tt.box, cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
