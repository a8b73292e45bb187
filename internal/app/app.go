// Package app wires the server together: configuration, logging, the
// scene tables, the leaderboard backend and the session hub.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ardifarizky/uas-pti/internal/config"
	"github.com/ardifarizky/uas-pti/internal/leaderboard"
	"github.com/ardifarizky/uas-pti/internal/net"
	"github.com/ardifarizky/uas-pti/internal/scene"
)

const shutdownTimeout = 10 * time.Second

// Run starts the server and blocks until the context is cancelled or the
// listener fails.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)

	scenes, err := scene.Load()
	if err != nil {
		return err
	}

	scores, cleanup, err := newLeaderboard(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	hub := net.NewHub(net.SessionConfig{
		StatTickInterval:    cfg.StatTickInterval,
		EffectSweepInterval: cfg.EffectSweepInterval,
		ScoreTickInterval:   cfg.ScoreTickInterval,
		ScoreTickPoints:     cfg.ScoreTickPoints,
	}, nil, scenes, scores, logger)
	defer hub.Close()

	srv := &http.Server{Addr: cfg.Addr, Handler: hub.Routes(cfg.ClientDir)}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	}
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(parsed).With().Timestamp().Logger()
}

// newLeaderboard picks the score backend: Redis when an address is
// configured, in-process memory otherwise.
func newLeaderboard(ctx context.Context, cfg config.Config, logger zerolog.Logger) (leaderboard.Store, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Info().Msg("leaderboard: in-memory store")
		return leaderboard.NewMemoryStore(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		DB:       cfg.RedisDB,
		Password: cfg.RedisPassword,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}
	logger.Info().Str("addr", cfg.RedisAddr).Msg("leaderboard: redis store")
	return leaderboard.NewRedisStore(client, logger), func() { client.Close() }, nil
}
