// main.go
package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"threedbotics-bot/intent"
)

var httpClient = &http.Client{
	Timeout: 10 * time.Second,
}

func loadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("💡 Using platform environment variables (no .env file)")
	}
	initLogLevel()

	return Config{
		PageToken:   getEnvOrDie("MESSENGER_PAGE_TOKEN"),
		AppSecret:   getEnvOrDie("META_APP_SECRET"),
		VerifyToken: getEnvOrDie("VERIFY_TOKEN"),
		OpenAIKey:   getEnvOrDie("OPENAI_API_KEY"),
		OpenAIModel: getEnvOrDefault("OPENAI_MODEL", defaultOpenAIModel),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        getEnvOrDefault("PORT", "8080"),
	}
}

func getEnvOrDie(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("❌ %s environment variable is not set", key)
	}
	return value
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// setupDatabase connects to Postgres when DATABASE_URL is configured.
// The message log is optional; without it the bot still serves webhooks.
func setupDatabase(databaseURL string) *sql.DB {
	if databaseURL == "" {
		LogInfo("💾 DATABASE_URL not set, message log disabled")
		return nil
	}

	var db *sql.DB
	var err error
	for i := 0; i < 3; i++ {
		if db, err = connectDB(databaseURL); err == nil {
			LogInfo("✅ Connected to database")
			return db
		}
		LogWarn("database connection attempt %d/3 failed: %v", i+1, err)
		time.Sleep(2 * time.Second)
	}

	log.Fatalf("❌ Failed to connect to database after 3 attempts: %v", err)
	return nil
}

func connectDB(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Printf("🚀 Starting 3DBotics Messenger bot...")

	cfg := loadConfig()
	db := setupDatabase(cfg.DatabaseURL)
	store := NewMessageStore(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := store.Init(ctx); err != nil {
		log.Fatalf("❌ Message store init failed: %v", err)
	}

	dedup := NewDeduplicator(defaultRetention)
	bot := NewBot(cfg, dedup, intent.Default(),
		NewOpenAIResolver(cfg.OpenAIKey, cfg.OpenAIModel),
		NewGraphSender(cfg.PageToken, httpClient),
		store)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Get("/", bot.handleHealth)
	router.Get("/webhook", bot.handleVerification)
	router.Post("/webhook", bot.validateFacebookRequest(bot.handleEvents))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		LogInfo("🌐 Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return dedup.Janitor(gctx, time.Minute)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("❌ Server error: %v", err)
	}
	LogInfo("👋 Shutdown complete")
}
