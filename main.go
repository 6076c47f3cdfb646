package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/danielhkuo/ballotchain/cliparse"
	"github.com/danielhkuo/ballotchain/db"
	"github.com/danielhkuo/ballotchain/middleware"
	"github.com/danielhkuo/ballotchain/router"
	"github.com/danielhkuo/ballotchain/store"
)

func main() {
	var err error

	setupLogging()

	// Parse configuration
	if err := cliparse.LoadEnvFile(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	policy, err := store.ParseVotePolicy(cfg.VotePolicy)
	if err != nil {
		slog.Error("Error parsing vote policy", "error", err)
		os.Exit(1)
	}

	opts := []store.Option{
		store.WithVotePolicy(policy),
		store.WithRecentWindow(cfg.RecentWindow),
	}

	// Optional database; without one state lives only in memory
	var repo *db.Repository
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()

		// Create schema (tables)
		if err := db.CreateSchema(dbConn); err != nil {
			slog.Error("schema creation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Database schema ready", "type", cfg.DatabaseType)

		repo = db.NewRepository(dbConn, cfg.DatabaseType)
		opts = append(opts, store.WithPersister(repo))
	}

	st := store.New(opts...)

	if repo != nil {
		snap, err := repo.Load()
		if err != nil {
			slog.Error("failed to load elections", "error", err)
			os.Exit(1)
		}
		st.Restore(snap)
		slog.Info("Loaded elections", "active", len(snap.Active), "past", len(snap.Past))
	}

	if cfg.SeedSample && st.Stats().TotalElections == 0 {
		sample := store.SampleSnapshot(time.Now())
		st.Restore(sample)
		if repo != nil {
			if err := repo.Save(sample); err != nil {
				slog.Error("failed to save sample elections", "error", err)
				os.Exit(1)
			}
		}
		slog.Info("Seeded sample elections", "count", len(sample.Active)+len(sample.Past))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.ExpiryInterval > 0 {
		go st.RunExpiry(ctx, cfg.ExpiryInterval)
	}

	// Create router
	mux := router.NewRouter(st)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "vote_policy", policy)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// setupLogging uses readable text on a terminal and JSON otherwise
func setupLogging() {
	var handler slog.Handler
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		handler = slog.NewTextHandler(os.Stderr, nil)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	slog.SetDefault(slog.New(handler))
}
