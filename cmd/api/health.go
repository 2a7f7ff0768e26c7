package main

import (
	"context"
	"net/http"
	"time"
)

// healthCheckHandler doubles as the readiness signal: it pings the database
// so an instance with a dead pool reports unhealthy instead of failing on
// the first payment.
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := app.db.PingContext(ctx); err != nil {
		app.logger.Errorw("health check failed", "error", err.Error())
		writeJSONError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}

	data := map[string]string{
		"status":  "ok",
		"env":     app.config.env,
		"version": version,
	}
	writeJSON(w, http.StatusOK, data)
}
