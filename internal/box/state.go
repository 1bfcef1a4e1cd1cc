package box

import (
	"time"

	"github.com/osse101/DegenBox_Go/internal/domain"
)

// Source-state guards. Each returns the first violated precondition.

func checkOwner(b *domain.Box, caller string) error {
	if b.Owner != caller {
		return domain.ErrNotBoxOwner
	}
	return nil
}

func checkCommittable(b *domain.Box) error {
	if b.RandomnessCommitted {
		return domain.ErrAlreadyCommitted
	}
	if b.Revealed {
		return domain.ErrAlreadyRevealed
	}
	return nil
}

func checkRevealable(b *domain.Box, handle string) error {
	if !b.RandomnessCommitted {
		return domain.ErrNotCommitted
	}
	if b.Revealed {
		return domain.ErrAlreadyRevealed
	}
	if b.RandomnessHandle != handle {
		return domain.ErrRandomnessHandleMismatch
	}
	return nil
}

func checkSettleable(b *domain.Box) error {
	if !b.Revealed {
		return domain.ErrNotRevealed
	}
	if b.Settled {
		return domain.ErrAlreadySettled
	}
	return nil
}

func checkRefundable(b *domain.Box, now time.Time, graceSeconds int64) error {
	if !b.RandomnessCommitted {
		return domain.ErrNotCommitted
	}
	if b.Settled {
		return domain.ErrAlreadySettled
	}
	if b.Revealed {
		return domain.ErrAlreadyRevealed
	}
	if sinceCommit(b, now) < graceSeconds {
		return domain.ErrRefundTooEarly
	}
	return nil
}

// revealExpired reports whether the reveal window has strictly passed
func revealExpired(b *domain.Box, now time.Time, windowSeconds int64) bool {
	return sinceCommit(b, now) > windowSeconds
}

func sinceCommit(b *domain.Box, now time.Time) int64 {
	if b.CommittedAt == nil {
		return 0
	}
	return elapsedSeconds(*b.CommittedAt, now)
}

// elapsedSeconds truncates to whole seconds and never goes negative
func elapsedSeconds(from, to time.Time) int64 {
	d := to.Sub(from)
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}

// forcedDud is the outcome recorded when the reveal window lapses
func forcedDud(b *domain.Box) {
	b.Revealed = true
	b.RewardAmount = 0
	b.IsJackpot = false
	b.RewardTier = domain.TierDud
	b.RandomBP = 0
}
