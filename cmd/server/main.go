package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	_ "modernc.org/sqlite"

	emailPkg "eventos/internal/adapters/email"
	web "eventos/internal/adapters/http"
	"eventos/internal/adapters/http/perf"
	"eventos/internal/adapters/storage"
	accountStore "eventos/internal/adapters/storage/account"
	eventStore "eventos/internal/adapters/storage/event"
	responseStore "eventos/internal/adapters/storage/response"
	"eventos/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real environments set variables directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	setupLogger()

	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("EVENTOS_DB_PATH", "eventos.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	// Health check
	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	log.Println("Database initialized successfully!")

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	// Create store instances (using timed DB for query instrumentation)
	acctStore := accountStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:  acctStore,
		EventStore:    eventStore.NewSQLiteStore(timedDB),
		ResponseStore: responseStore.NewSQLiteStore(timedDB),
	}

	// Seed default admin account if no accounts exist
	adminEmail := envOrDefault("EVENTOS_ADMIN_EMAIL", "admin@eventos.local")
	adminPassword := envOrDefault("EVENTOS_ADMIN_PASSWORD", "troque-esta-senha")
	seedDeps := orchestrators.CreateAccountDeps{AccountStore: acctStore}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedDeps, adminEmail, adminPassword); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Configure email sender
	resendKey := os.Getenv("EVENTOS_RESEND_KEY")
	emailFrom := envOrDefault("EVENTOS_RESEND_FROM", "Eventos <noreply@eventos.local>")
	emailReply := envOrDefault("EVENTOS_REPLY_TO", "")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom, emailReply)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom, emailReply)
		if os.Getenv("EVENTOS_ENV") == "production" {
			log.Println("WARNING: EVENTOS_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set EVENTOS_RESEND_KEY for real delivery)")
		}
	}

	// Create HTTP handler with middleware (pass collector for timing + dashboard)
	mux := web.NewMux("static", stores, collector)

	// Start server
	addr := envOrDefault("EVENTOS_ADDR", ":8080")
	log.Printf("Eventos %s starting on %s (env=%s)", version, addr, envOrDefault("EVENTOS_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// setupLogger installs a tinted slog handler on stderr. Level comes from
// EVENTOS_LOG_LEVEL (debug, info, warn, error); default is info.
func setupLogger() {
	level := slog.LevelInfo
	switch envOrDefault("EVENTOS_LOG_LEVEL", "info") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	})))
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
