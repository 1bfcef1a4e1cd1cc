package box

import (
	"context"
	"encoding/binary"
	"math/bits"

	"github.com/stretchr/testify/mock"
)

// MockOracle is a testify mock of oracle.Oracle
type MockOracle struct {
	mock.Mock
}

func (m *MockOracle) Request(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockOracle) Reveal(ctx context.Context, handle string, checkpoint uint64) ([]byte, error) {
	args := m.Called(ctx, handle, checkpoint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// rawFor returns oracle bytes that convert to exactly bp
func rawFor(bp uint16) []byte {
	// ceil(bp * 2^64 / 10000)
	v, _ := bits.Div64(uint64(bp), 9999, 10000)
	out := make([]byte, 32)
	binary.LittleEndian.PutUint64(out, v)
	return out
}
