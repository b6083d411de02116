// apps/go-server/main.go
//
// Entry point of the Boggle party server.
// Startup order:
//   - .env merge (godotenv), then config from the environment.
//   - Log level, tracing.
//   - Dictionary load; the server refuses to start without one.
//   - History database (optional), board generator, event hub, rooms.
//   - HTTP server with graceful shutdown on SIGINT/SIGTERM.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/boggle/apps/go-server/internal/config"
	"github.com/robalobadob/boggle/apps/go-server/internal/events"
	"github.com/robalobadob/boggle/apps/go-server/internal/generator"
	"github.com/robalobadob/boggle/apps/go-server/internal/history"
	"github.com/robalobadob/boggle/apps/go-server/internal/httpserver"
	"github.com/robalobadob/boggle/apps/go-server/internal/rooms"
	"github.com/robalobadob/boggle/apps/go-server/internal/store"
	"github.com/robalobadob/boggle/apps/go-server/internal/telemetry"
	"github.com/robalobadob/boggle/apps/go-server/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Msg("tracing disabled")
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	dict := words.New(words.SourceFor(cfg.DictionaryFile))
	if err := dict.EnsureLoaded(); err != nil {
		log.Fatal().Err(err).Msg("failed to load dictionary")
	}
	log.Info().Int("words", dict.Stats().WordCount).Str("file", cfg.DictionaryFile).Msg("dictionary loaded")

	managerOpts := []rooms.Option{rooms.WithLexicon(dict)}
	deps := httpserver.Deps{
		Boards:     generator.New(dict.Trie()),
		Dictionary: dict,
		Sessions:   store.NewMemoryStore(),
	}

	if cfg.PersistenceEnabled() {
		db, err := openDB(cfg.DatabasePath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("failed to open history database")
		}
		defer db.Close()
		hist := history.NewStore(db)
		managerOpts = append(managerOpts, rooms.WithCodeChecker(hist))
		deps.History = hist
	} else {
		log.Info().Msg("history disabled; room codes are unique per process only")
	}

	hub := events.NewHub(func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || origin == cfg.ClientOrigin
	})
	deps.Hub = hub
	deps.Events = hub
	deps.Rooms = rooms.NewManager(managerOpts...)

	srv := httpserver.New(cfg, deps)
	defer srv.Close()

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting go-server")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server exited")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
