package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tier is the discrete outcome bucket selected by the resolver
type Tier string

const (
	TierNone      Tier = ""
	TierDud       Tier = "dud"
	TierRebate    Tier = "rebate"
	TierBreakEven Tier = "break_even"
	TierProfit    Tier = "profit"
	TierJackpot   Tier = "jackpot"
	TierRefunded  Tier = "refunded"
)

// WalkOrder is the fixed order in which explicit probability tiers claim a sample.
// Jackpot is the remainder and is never walked.
var WalkOrder = [...]Tier{TierDud, TierRebate, TierBreakEven, TierProfit}

var titleCaser = cases.Title(language.English)

// DisplayName returns a human readable label, e.g. "Break Even"
func (t Tier) DisplayName() string {
	if t == TierNone {
		return ""
	}
	return titleCaser.String(strings.ReplaceAll(string(t), "_", " "))
}

// Valid reports whether t is a known tier
func (t Tier) Valid() bool {
	switch t {
	case TierNone, TierDud, TierRebate, TierBreakEven, TierProfit, TierJackpot, TierRefunded:
		return true
	}
	return false
}

// PresetID selects one of the game tables. 0 is the default table.
type PresetID uint8

const (
	PresetDefault PresetID = 0
	PresetOne     PresetID = 1
	PresetTwo     PresetID = 2
	PresetThree   PresetID = 3

	// PresetCount is the number of tables a platform config carries
	PresetCount = 4
)

// Valid reports whether p indexes an existing table
func (p PresetID) Valid() bool {
	return int(p) < PresetCount
}
