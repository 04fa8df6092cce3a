package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrSaleNotFound       = errors.New("sale not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidTransaction = errors.New("invalid finance transaction")

	// ErrSaleAlreadyRecorded is returned when a session was already sold
	// (sales.session_id is unique).
	ErrSaleAlreadyRecorded = errors.New("sale already recorded for session")
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
