package main

import (
	"expvar"
	"log"
	"os"
	"runtime"
	"strconv"

	"pagrelay/internal/db"
	"pagrelay/internal/gateway"
	"pagrelay/internal/store"

	_ "github.com/lib/pq"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "1.0.0"

func envString(key, fallback string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if val, exists := os.LookupEnv(key); exists {
		if parsedVal, err := strconv.Atoi(val); err == nil {
			return parsedVal
		}
		log.Printf("invalid %s, defaulting to %d", key, fallback)
	}
	return fallback
}

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
	level := zapcore.InfoLevel

	core := zapcore.NewCore(consoleEncoder, zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout)), level)

	return zap.New(core).Sugar(), nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded, reading environment directly")
	}

	// Fail fast before binding the listener: without the gateway credential
	// or the database address there is nothing this service can do.
	apiKey := os.Getenv("PAGARME_API_KEY")
	dbAddr := os.Getenv("DB_ADDR")
	if apiKey == "" || dbAddr == "" {
		log.Fatal("PAGARME_API_KEY and DB_ADDR must be set")
	}

	cfg := config{
		addr: envString("ADDR", ":8080"),
		env:  envString("ENV", "development"),
		db: dbConfig{
			addr:         dbAddr,
			maxOpenConns: envInt("DB_MAX_OPEN_CONNS", 30),
			maxIdleConns: envInt("DB_MAX_IDLE_CONNS", 30),
			maxIdleTime:  envString("DB_MAX_IDLE_TIME", "15m"),
		},
		pagarme: pagarmeConfig{
			apiKey: apiKey,
			apiURL: envString("PAGARME_API_URL", gateway.DefaultBaseURL),
		},
	}

	// Logger
	logger, err := NewLogger()
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logger.Sync()

	// Database
	db, err := db.New(
		cfg.db.addr,
		cfg.db.maxOpenConns,
		cfg.db.maxIdleConns,
		cfg.db.maxIdleTime,
	)
	if err != nil {
		logger.Fatal(err)
	}

	defer db.Close()
	logger.Info("database connection pool established")

	//storage
	store := store.NewStorage(db)

	// Pagar.me client
	pagarme := gateway.NewClient(cfg.pagarme.apiKey, cfg.pagarme.apiURL)

	app := &application{
		config:  cfg,
		logger:  logger,
		store:   store,
		gateway: pagarme,
		db:      db,
	}

	//Metrics collected http://localhost:8080/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("database", expvar.Func(func() any {
		return db.Stats()
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
