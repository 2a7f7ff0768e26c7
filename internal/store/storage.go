package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	ErrInvalidPayment    = errors.New("payment requires a method and a positive amount")
	QueryTimeoutDuration = time.Second * 5
)

type Storage struct {
	Payments interface {
		Create(context.Context, *Payment) error
		GetAll(context.Context) ([]Payment, error)
	}
}

func NewStorage(db *sql.DB) Storage {
	return Storage{
		Payments: &PaymentsStore{db},
	}
}
