package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pagrelay/internal/gateway"
	"pagrelay/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// paymentGateway is the slice of the Pagar.me client the handlers use,
// kept narrow so tests can stub it.
type paymentGateway interface {
	ChargeCard(ctx context.Context, order json.RawMessage) (*gateway.CardOrder, error)
	ChargePix(ctx context.Context, amount int64) (*gateway.PixOrder, error)
}

type application struct {
	config  config
	store   store.Storage
	gateway paymentGateway
	db      *sql.DB
	logger  *zap.SugaredLogger
}

type config struct {
	addr    string
	env     string
	db      dbConfig
	pagarme pagarmeConfig
}

type pagarmeConfig struct {
	apiKey string
	apiURL string
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	//Set a timeout value on the request context (ctx), that will signal through ctx.Done() that the request has timed out and further processing should be stopped
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", app.rootHandler)
	r.Get("/health", app.healthCheckHandler)
	r.Get("/debug/vars", expvar.Handler().ServeHTTP)

	r.Post("/pagar/cartao", app.payWithCardHandler)
	r.Post("/pagar/pix", app.payWithPixHandler)
	r.Get("/pagamentos", app.listPaymentsHandler)

	return r
}

func (app *application) run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	// Implementing graceful shutdown
	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
