package gateway

import (
	"encoding/json"
	"fmt"
)

// fallback fills descriptive fields the gateway did not report.
const fallback = "N/A"

// CardOrder is the normalized outcome of a credit card order.
type CardOrder struct {
	ID     string
	Status string
	Brand  string
	Last4  string
}

// PixOrder is the normalized outcome of a PIX order.
type PixOrder struct {
	ID        string
	QRCode    string
	QRCodeURL string
}

// Error is a non-2xx reply from the gateway. Body keeps the raw error
// payload so handlers can pass it through to the caller.
type Error struct {
	Status int
	Body   json.RawMessage
}

func (e *Error) Error() string {
	if len(e.Body) > 0 {
		return fmt.Sprintf("pagarme order failed: http=%d body=%s", e.Status, string(e.Body))
	}
	return fmt.Sprintf("pagarme order failed: http=%d", e.Status)
}

type lastTransaction struct {
	Status    string `json:"status"`
	CardBrand string `json:"card_brand"`
	CardLast4 string `json:"card_last_four_digits"`
	QRCode    string `json:"qr_code"`
	QRCodeURL string `json:"qr_code_url"`
}

type orderResponse struct {
	ID      string `json:"id"`
	Charges []struct {
		LastTransaction lastTransaction `json:"last_transaction"`
	} `json:"charges"`
}

// transaction returns charges[0].last_transaction, or a zero value when the
// gateway reported no charges, so the defaults apply downstream.
func (r *orderResponse) transaction() lastTransaction {
	if len(r.Charges) == 0 {
		return lastTransaction{}
	}
	return r.Charges[0].LastTransaction
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
