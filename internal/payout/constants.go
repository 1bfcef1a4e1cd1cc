package payout

import "errors"

// RandomBytesLen is the number of oracle bytes consumed per sample
const RandomBytesLen = 8

// Error messages
const (
	ErrMsgShortRandomness     = "randomness shorter than 8 bytes"
	ErrMsgSampleOutOfRange    = "random sample outside [0, 10000)"
	ErrMsgBandOverAllocated   = "band probabilities exceed 10000 bp"
	ErrContextRewardOverflow  = "reward computation"
	ErrContextReserveOverflow = "reserve computation"
)

var (
	ErrShortRandomness  = errors.New(ErrMsgShortRandomness)
	ErrSampleOutOfRange = errors.New(ErrMsgSampleOutOfRange)
)
