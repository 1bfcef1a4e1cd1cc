// Package oracle is the two-phase randomness source: a handle is requested at
// commit time and its value is revealed only once the ledger has moved past the
// committed checkpoint.
package oracle

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"

	"github.com/osse101/DegenBox_Go/internal/clock"
	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/logger"
)

// Oracle produces unpredictable bytes bound to a handle and checkpoint.
// Reveal fails with domain.ErrRandomnessNotReady until the value is final.
type Oracle interface {
	Request(ctx context.Context) (string, error)
	Reveal(ctx context.Context, handle string, checkpoint uint64) ([]byte, error)
}

// Local derives values with HKDF-SHA256 from a server secret. The value for a
// (handle, checkpoint) pair is fixed at request time but unreadable without the
// secret, and Reveal withholds it until the clock reaches checkpoint + delay.
type Local struct {
	secret []byte
	delay  uint64
	clock  clock.Clock
}

// NewLocal creates a local oracle. delay is measured in ledger heights.
func NewLocal(secret []byte, delay uint64, clk clock.Clock) (*Local, error) {
	if len(secret) < MinSecretLen {
		return nil, ErrSecretTooShort
	}
	s := make([]byte, len(secret))
	copy(s, secret)
	return &Local{secret: s, delay: delay, clock: clk}, nil
}

// Request issues a fresh handle
func (o *Local) Request(ctx context.Context) (string, error) {
	handle := uuid.NewString()
	logger.FromContext(ctx).Debug(LogMsgHandleIssued, "handle", handle)
	return handle, nil
}

// Reveal returns ValueLen bytes for handle at checkpoint once the clock has
// advanced far enough
func (o *Local) Reveal(ctx context.Context, handle string, checkpoint uint64) ([]byte, error) {
	if _, err := uuid.Parse(handle); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRandomnessHandleMismatch, err)
	}

	readyAt := checkpoint + o.delay
	if readyAt < checkpoint {
		return nil, domain.ErrArithmeticOverflow
	}
	if height := o.clock.Height(); height < readyAt {
		logger.FromContext(ctx).Debug(LogMsgNotReady, "handle", handle, "height", height, "ready_at", readyAt)
		return nil, domain.ErrRandomnessNotReady
	}

	info := make([]byte, len(infoPrefix)+8)
	copy(info, infoPrefix)
	binary.BigEndian.PutUint64(info[len(infoPrefix):], checkpoint)

	out := make([]byte, ValueLen)
	if _, err := io.ReadFull(hkdf.New(sha256.New, o.secret, []byte(handle), info), out); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextDerive, err)
	}
	return out, nil
}

// IsNotReady reports whether err means the value should be retried later
func IsNotReady(err error) bool {
	return errors.Is(err, domain.ErrRandomnessNotReady)
}
