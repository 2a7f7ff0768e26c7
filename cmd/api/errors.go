package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"pagrelay/internal/gateway"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusBadRequest, err.Error())
}

// paymentErrorResponse maps a failed relay attempt to the flat {"error": ...}
// body the payment endpoints promise. When the gateway rejected the order its
// raw error payload is passed through untouched; anything else (transport
// failure, persistence failure) gets the generic message.
func (app *application) paymentErrorResponse(w http.ResponseWriter, r *http.Request, err error, message string) {
	app.logger.Warnw("payment failed", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	type envelope struct {
		Error any `json:"error"`
	}

	var gatewayErr *gateway.Error
	if errors.As(err, &gatewayErr) && json.Valid(gatewayErr.Body) {
		writeJSON(w, http.StatusBadRequest, &envelope{Error: json.RawMessage(gatewayErr.Body)})
		return
	}
	writeJSON(w, http.StatusBadRequest, &envelope{Error: message})
}
