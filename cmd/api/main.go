package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/auth-gateway/internal/config"
	"github.com/Dan9191/auth-gateway/internal/email"
	"github.com/Dan9191/auth-gateway/internal/handler"
	"github.com/Dan9191/auth-gateway/internal/middleware"
	"github.com/Dan9191/auth-gateway/internal/migrations"
	"github.com/Dan9191/auth-gateway/internal/repository"
	"github.com/Dan9191/auth-gateway/internal/service"
	"github.com/Dan9191/auth-gateway/internal/session"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	if cfg.SessionSecretDefaulted() {
		logger.Warn("SESSION_SECRET is not set, using the development default")
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn())
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Apply migrations
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatalf("Failed to set migration dialect: %v", err)
	}
	if err := goose.Up(db, "."); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, logger)

	var store session.Store
	switch cfg.SessionStore {
	case config.SessionStorePostgres:
		store = session.NewPostgresStore(db, cfg.SessionTTL, logger)
	default:
		store = session.NewMemoryStore(cfg.SessionTTL, logger)
	}
	sessions := session.NewManager(store, cfg.SessionSecret, cfg.SessionTTL)
	guard := middleware.NewGuard(sessions, logger)

	var mailer *email.Sender
	if cfg.SMTPConfigured() {
		mailer = email.NewSender(cfg, logger)
	}
	h := handler.NewHandler(svc, sessions, mailer, logger, cfg.StaticDir)

	// Expired sessions are rejected on lookup regardless; the scheduled
	// sweep only reclaims space.
	sweeper := cron.New()
	if _, err := sweeper.AddFunc("@every 10m", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := store.CleanupExpired(ctx); err != nil {
			logger.Errorf("Failed to clean up expired sessions: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule session cleanup: %v", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	// API routes
	r.HandleFunc("/api/register", h.Register).Methods("POST")
	r.HandleFunc("/api/login", h.Login).Methods("POST")
	r.HandleFunc("/api/logout", h.Logout).Methods("POST")
	r.Handle("/api/me", guard.RequireAPI(http.HandlerFunc(h.Me))).Methods("GET")
	// Page routes
	r.HandleFunc("/", h.Index).Methods("GET")
	r.Handle("/dashboard.html", guard.RequirePage(http.HandlerFunc(h.Dashboard))).Methods("GET")
	r.HandleFunc("/login.html", h.AuthPage("login.html")).Methods("GET")
	r.HandleFunc("/register.html", h.AuthPage("register.html")).Methods("GET")
	// Remaining static assets (styles, scripts)
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir))).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
}
