package postgres

import (
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/repository"
)

// toDB narrows an amount to BIGINT. Amounts above MaxInt64 cannot be stored.
func toDB(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, domain.ErrArithmeticOverflow
	}
	return int64(v), nil
}

// fromDB widens a non-negative BIGINT
func fromDB(v int64) uint64 {
	if v < 0 {
		return 0
	}
	return uint64(v)
}

// translate maps driver errors onto domain and repository sentinels
func translate(msg string, err error, notFound error) error {
	if errors.Is(err, pgx.ErrNoRows) && notFound != nil {
		return notFound
	}
	if errors.Is(err, pgx.ErrTxClosed) {
		return domain.ErrTxClosed
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgErrorCodeUniqueViolation:
			return fmt.Errorf("%s: %w", msg, repository.ErrDuplicateKey)
		case PgErrorCodeNumericOutOfRange:
			return fmt.Errorf("%s: %w", msg, domain.ErrArithmeticOverflow)
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
