package store

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yungbote/rentals-backend/internal/domain/errs"
)

// MapError maps storage failures into application error codes.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.New(errs.CodeNotFound, op, "Not found.", err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return conflict(op, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return errs.Wrap(errs.CodeInternal, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return conflict(op, err) // unique_violation
		case "23503":
			return errs.New(errs.CodeValidation, op, "Referenced object does not exist.", err) // foreign_key_violation
		case "23514":
			return errs.New(errs.CodeValidation, op, "Value violates a check constraint.", err)
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "duplicate key"),
		strings.Contains(msg, "unique constraint failed"):
		return conflict(op, err)
	case strings.Contains(msg, "foreign key constraint failed"):
		return errs.New(errs.CodeValidation, op, "Referenced object does not exist.", err)
	default:
		return errs.Wrap(errs.CodeInternal, op, err)
	}
}

func conflict(op string, cause error) error {
	e := errs.Conflict(op, "The fields must make a unique set.")
	e.Cause = cause
	return e
}
