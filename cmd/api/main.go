package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/toonami2907/showcase-api/internal/auth"
	"github.com/toonami2907/showcase-api/internal/config"
	"github.com/toonami2907/showcase-api/internal/httpapi"
	"github.com/toonami2907/showcase-api/internal/obs"
	"github.com/toonami2907/showcase-api/internal/showcase"
)

var (
	version = "0.3.0"
	commit  = "dev"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	codec, err := auth.NewCodec(
		cfg.AccessSecret,
		cfg.RefreshSecret,
		auth.WithAccessTTL(cfg.AccessTTL),
		auth.WithRefreshTTL(cfg.RefreshTTL),
	)
	if err != nil {
		log.Fatalf("token codec: %v", err)
	}

	// Stores: postgres when a DSN is configured, in-memory otherwise.
	var db *sql.DB
	var users auth.UserStore
	var projects showcase.ProjectStore
	var comments showcase.CommentStore
	if cfg.PostgresDSN != "" {
		db, err = sql.Open("pgx", cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
		users = auth.NewPGStore(db)
		projects = showcase.NewPGProjects(db)
		comments = showcase.NewPGComments(db)
	} else {
		log.Println("SHOWCASE_PG_DSN not set, using in-memory stores")
		users = auth.NewInMemoryStore()
		projects = showcase.NewInMemoryProjects()
		comments = showcase.NewInMemoryComments()
	}

	sessions := auth.NewService(users, codec)
	catalog := showcase.NewService(projects, comments, users)

	api := httpapi.New(httpapi.ReadyProbe{DB: db}, version, sessions, catalog,
		httpapi.WithCORSOrigins(cfg.CORSOrigins),
		httpapi.WithRateLimit(cfg.RateBurst, cfg.RatePerSec),
		httpapi.WithMaxBodyBytes(cfg.MaxBodyBytes),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting showcase-api %s on %s", version, srv.Addr)

	// graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	if db != nil {
		_ = db.Close()
	}
	log.Println("Stopped")
}
