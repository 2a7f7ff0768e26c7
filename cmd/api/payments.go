package main

import (
	"encoding/json"
	"io"
	"net/http"

	"pagrelay/internal/store"
)

// cardOrderPayload mirrors only the slice of the gateway's order schema this
// service reads. The rest of the body is opaque and forwarded verbatim.
type cardOrderPayload struct {
	Items []struct {
		Amount int64 `json:"amount" validate:"required,min=1"`
	} `json:"items" validate:"required,min=1,dive"`
}

type cardPaymentResponse struct {
	Message       string `json:"message"`
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	Brand         string `json:"brand"`
	Last4         string `json:"last4"`
}

type pixPaymentPayload struct {
	Amount int64 `json:"amount" validate:"required,min=1"`
}

type pixPaymentResponse struct {
	Message       string `json:"message"`
	TransactionID string `json:"transactionId"`
	QRCode        string `json:"qr_code"`
	QRCodeURL     string `json:"qr_code_url"`
}

func (app *application) rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("API de Pagamentos com Pagar.me + Postgres"))
}

func (app *application) payWithCardHandler(w http.ResponseWriter, r *http.Request) {
	maxBytes := 1_048_578 //1mb
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	// The raw body is kept around because the gateway receives it as-is;
	// decoding is only for validating the fields this service depends on.
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var order cardOrderPayload
	if err := json.Unmarshal(raw, &order); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(order); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	result, err := app.gateway.ChargeCard(r.Context(), raw)
	if err != nil {
		app.paymentErrorResponse(w, r, err, "Erro ao processar pagamento")
		return
	}

	var amount int64
	for _, item := range order.Items {
		amount += item.Amount
	}

	payment := &store.Payment{
		Method:        store.MethodCreditCard,
		Amount:        amount,
		Status:        result.Status,
		TransactionID: result.ID,
		Brand:         result.Brand,
		Last4:         result.Last4,
	}
	// A failure here leaves a charge at the gateway with no local record.
	// No compensating void/refund is attempted.
	if err := app.store.Payments.Create(r.Context(), payment); err != nil {
		app.paymentErrorResponse(w, r, err, "Erro ao processar pagamento")
		return
	}

	writeJSON(w, http.StatusOK, &cardPaymentResponse{
		Message:       "Pagamento com cartão realizado com sucesso!",
		TransactionID: result.ID,
		Status:        result.Status,
		Brand:         result.Brand,
		Last4:         result.Last4,
	})
}

func (app *application) payWithPixHandler(w http.ResponseWriter, r *http.Request) {
	var payload pixPaymentPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	result, err := app.gateway.ChargePix(r.Context(), payload.Amount)
	if err != nil {
		app.paymentErrorResponse(w, r, err, "Erro ao processar PIX")
		return
	}

	payment := &store.Payment{
		Method:        store.MethodPix,
		Amount:        payload.Amount, // persisted verbatim, no derivation
		Status:        "pending",
		TransactionID: result.ID,
		QRCode:        result.QRCode,
		QRCodeURL:     result.QRCodeURL,
	}
	if err := app.store.Payments.Create(r.Context(), payment); err != nil {
		app.paymentErrorResponse(w, r, err, "Erro ao processar PIX")
		return
	}

	writeJSON(w, http.StatusOK, &pixPaymentResponse{
		Message:       "Pedido criado com sucesso!",
		TransactionID: result.ID,
		QRCode:        result.QRCode,
		QRCodeURL:     result.QRCodeURL,
	})
}

func (app *application) listPaymentsHandler(w http.ResponseWriter, r *http.Request) {
	payments, err := app.store.Payments.GetAll(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if payments == nil {
		payments = []store.Payment{}
	}

	writeJSON(w, http.StatusOK, payments)
}
