package postgres

import (
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/DegenBox_Go/internal/domain"
)

const projectColumns = `project_id, owner, box_price, luck_time_interval_override, active, game_preset,
	total_boxes_created, total_boxes_settled, total_revenue, total_paid_out, created_at, updated_at`

const boxColumns = `project_id, box_id, owner, created_at, committed_at, committed_checkpoint,
	luck, game_preset_snapshot, purchased_price, commission_paid,
	revealed, reward_amount, is_jackpot, reward_tier, random_sample,
	randomness_committed, settled, randomness_request_handle`

func scanProject(row pgx.Row) (*domain.Project, error) {
	var (
		id, price, created, settled, revenue, paid int64
		preset                                     int16
		p                                          domain.Project
	)
	err := row.Scan(&id, &p.Owner, &price, &p.LuckIntervalOverride, &p.Active, &preset,
		&created, &settled, &revenue, &paid, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.ID = fromDB(id)
	p.BoxPrice = fromDB(price)
	p.Preset = domain.PresetID(preset)
	p.TotalBoxesCreated = fromDB(created)
	p.TotalBoxesSettled = fromDB(settled)
	p.TotalRevenue = fromDB(revenue)
	p.TotalPaidOut = fromDB(paid)
	return &p, nil
}

func scanBox(row pgx.Row) (*domain.Box, error) {
	var (
		projectID, boxID, checkpoint, price, commission, reward int64
		luck, preset                                            int16
		sample                                                  int32
		tier                                                    string
		committedAt                                             *time.Time
		b                                                       domain.Box
	)
	err := row.Scan(&projectID, &boxID, &b.Owner, &b.CreatedAt, &committedAt, &checkpoint,
		&luck, &preset, &price, &commission,
		&b.Revealed, &reward, &b.IsJackpot, &tier, &sample,
		&b.RandomnessCommitted, &b.Settled, &b.RandomnessHandle)
	if err != nil {
		return nil, err
	}
	b.ProjectID = fromDB(projectID)
	b.ID = fromDB(boxID)
	b.CommittedAt = committedAt
	b.CommittedCheckpoint = fromDB(checkpoint)
	b.Luck = uint8(luck)
	b.PresetSnapshot = domain.PresetID(preset)
	b.PurchasedPrice = fromDB(price)
	b.CommissionPaid = fromDB(commission)
	b.RewardAmount = fromDB(reward)
	b.RewardTier = domain.Tier(tier)
	b.RandomBP = uint16(sample)
	return &b, nil
}

// projectArgs returns the column values of a project in projectColumns order
func projectArgs(p *domain.Project) ([]any, error) {
	ints, err := toDBAll(p.ID, p.BoxPrice, p.TotalBoxesCreated, p.TotalBoxesSettled, p.TotalRevenue, p.TotalPaidOut)
	if err != nil {
		return nil, err
	}
	return []any{ints[0], p.Owner, ints[1], p.LuckIntervalOverride, p.Active, int16(p.Preset),
		ints[2], ints[3], ints[4], ints[5], p.CreatedAt, p.UpdatedAt}, nil
}

// boxArgs returns the column values of a box in boxColumns order
func boxArgs(b *domain.Box) ([]any, error) {
	ints, err := toDBAll(b.ProjectID, b.ID, b.CommittedCheckpoint, b.PurchasedPrice, b.CommissionPaid, b.RewardAmount)
	if err != nil {
		return nil, err
	}
	return []any{ints[0], ints[1], b.Owner, b.CreatedAt, b.CommittedAt, ints[2],
		int16(b.Luck), int16(b.PresetSnapshot), ints[3], ints[4],
		b.Revealed, ints[5], b.IsJackpot, string(b.RewardTier), int32(b.RandomBP),
		b.RandomnessCommitted, b.Settled, b.RandomnessHandle}, nil
}

func toDBAll(vals ...uint64) ([]int64, error) {
	out := make([]int64, len(vals))
	for i, v := range vals {
		n, err := toDB(v)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
