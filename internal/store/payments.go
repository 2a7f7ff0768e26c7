package store

import (
	"context"
	"database/sql"
	"time"
)

const (
	MethodCreditCard = "credit_card"
	MethodPix        = "pix"
)

// Payment is one relayed charge. Records are written once after the gateway
// answers and never updated; brand/last4 and the QR fields are informational,
// captured from whatever the gateway reported.
//
// Backing table:
//
//	CREATE TABLE payments (
//	    id             bigserial PRIMARY KEY,
//	    method         text NOT NULL,
//	    amount         bigint NOT NULL,
//	    status         text NOT NULL DEFAULT 'pending',
//	    transaction_id text NOT NULL DEFAULT '',
//	    brand          text NOT NULL DEFAULT '',
//	    last4          text NOT NULL DEFAULT '',
//	    qr_code        text NOT NULL DEFAULT '',
//	    qr_code_url    text NOT NULL DEFAULT '',
//	    created_at     timestamptz NOT NULL DEFAULT now()
//	);
type Payment struct {
	ID            int64     `json:"id"`
	Method        string    `json:"method"`
	Amount        int64     `json:"amount"` // minor currency units
	Status        string    `json:"status"`
	TransactionID string    `json:"transactionId"`
	Brand         string    `json:"brand,omitempty"`
	Last4         string    `json:"last4,omitempty"`
	QRCode        string    `json:"qr_code,omitempty"`
	QRCodeURL     string    `json:"qr_code_url,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type PaymentsStore struct {
	db *sql.DB
}

func (s *PaymentsStore) Create(ctx context.Context, payment *Payment) error {
	if payment.Method == "" || payment.Amount <= 0 {
		return ErrInvalidPayment
	}
	if payment.Status == "" {
		payment.Status = "pending"
	}

	query := `
        INSERT INTO payments (method, amount, status, transaction_id, brand, last4, qr_code, qr_code_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at
    `

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return s.db.QueryRowContext(ctx, query,
		payment.Method,
		payment.Amount,
		payment.Status,
		payment.TransactionID,
		payment.Brand,
		payment.Last4,
		payment.QRCode,
		payment.QRCodeURL,
	).Scan(&payment.ID, &payment.CreatedAt)
}

func (s *PaymentsStore) GetAll(ctx context.Context) ([]Payment, error) {
	query := `
        SELECT id, method, amount, status, transaction_id, brand, last4, qr_code, qr_code_url, created_at
        FROM payments
        ORDER BY created_at ASC
    `

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []Payment
	for rows.Next() {
		var payment Payment
		err := rows.Scan(
			&payment.ID,
			&payment.Method,
			&payment.Amount,
			&payment.Status,
			&payment.TransactionID,
			&payment.Brand,
			&payment.Last4,
			&payment.QRCode,
			&payment.QRCodeURL,
			&payment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}
