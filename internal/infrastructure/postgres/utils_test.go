package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/sarisari-inventory/internal/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"lock_timeout", &pgconn.PgError{Code: "55P03"}, domain.ErrBusy},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, domain.ErrBusy},
		{"serialization", &pgconn.PgError{Code: "40001"}, domain.ErrBusy},
		{"statement_timeout", &pgconn.PgError{Code: "57014"}, domain.ErrBusy},
		{"deadline", context.DeadlineExceeded, domain.ErrBusy},
		{"check violation", &pgconn.PgError{Code: "23514"}, domain.ErrStorage},
		{"conexión", errors.New("connection refused"), domain.ErrStorage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapError("op", tt.err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, tt.err, "conserva la causa")
		})
	}
	assert.NoError(t, mapError("op", nil))
}
