package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yungbote/rentals-backend/internal/domain/errs"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want errs.Code
	}{
		{"record not found", gorm.ErrRecordNotFound, errs.CodeNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", gorm.ErrRecordNotFound), errs.CodeNotFound},
		{"pg unique", &pgconn.PgError{Code: "23505"}, errs.CodeConflict},
		{"pg foreign key", &pgconn.PgError{Code: "23503"}, errs.CodeValidation},
		{"sqlite unique", errors.New("UNIQUE constraint failed: booking.listing_id, booking.check_in, booking.check_out"), errs.CodeConflict},
		{"duplicate key text", errors.New("ERROR: duplicate key value violates unique constraint"), errs.CodeConflict},
		{"canceled", context.Canceled, errs.CodeInternal},
		{"other", errors.New("boom"), errs.CodeInternal},
		{"already coded", errs.Forbidden("x", "no"), errs.CodeForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := errs.CodeOf(MapError("op", tc.err)); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
	if MapError("op", nil) != nil {
		t.Fatalf("nil must map to nil")
	}
}

func TestMapErrorConflictHasNonFieldError(t *testing.T) {
	err := MapError("booking.create", &pgconn.PgError{Code: "23505"})
	if len(errs.FieldsOf(err)[errs.NonFieldErrors]) == 0 {
		t.Fatalf("expected non_field_errors on conflict, got %v", errs.FieldsOf(err))
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		t.Fatalf("cause must stay reachable")
	}
}
