package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/sarisari-inventory/internal/domain"
)

// Códigos primarios de SQLite que indican contención de bloqueo.
const (
	sqliteBusy   = 5
	sqliteLocked = 6
)

// mapError traduce errores del driver a la taxonomía de dominio: bloqueo ocupado y
// plazos vencidos -> domain.ErrBusy; el resto -> domain.ErrStorage.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if isBusy(err) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrBusy, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}

func isBusy(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var coded interface{ Code() int }
	if errors.As(err, &coded) {
		switch coded.Code() & 0xff {
		case sqliteBusy, sqliteLocked:
			return true
		}
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}
