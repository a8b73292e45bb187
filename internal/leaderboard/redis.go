package leaderboard

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	scoresKey = "leaderboard:scores"
	namesKey  = "leaderboard:names"
)

var _ Store = (*RedisStore)(nil)

// RedisStore keeps the ranking in a sorted set. Scores go in with GT
// semantics, so an existing higher score survives a lower submission
// without a read-modify-write round trip.
type RedisStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, logger zerolog.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger}
}

// Save implements Store.
func (s *RedisStore) Save(ctx context.Context, entry Entry) error {
	if entry.Identity == "" {
		return fmt.Errorf("save leaderboard entry: empty identity")
	}
	pipe := s.client.Pipeline()
	pipe.ZAddGT(ctx, scoresKey, redis.Z{Score: float64(entry.Score), Member: entry.Identity})
	if entry.Username != "" {
		pipe.HSet(ctx, namesKey, entry.Identity, entry.Username)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Error().Err(err).Str("identity", entry.Identity).Msg("leaderboard save failed")
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	s.logger.Debug().Str("identity", entry.Identity).Int("score", entry.Score).Msg("leaderboard entry saved")
	return nil
}

// Top implements Store.
func (s *RedisStore) Top(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.client.ZRevRangeWithScores(ctx, scoresKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	identities := make([]string, len(rows))
	for i, row := range rows {
		identities[i], _ = row.Member.(string)
	}
	names, err := s.client.HMGet(ctx, namesKey, identities...).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	entries := make([]Entry, len(rows))
	for i, row := range rows {
		entries[i] = Entry{Identity: identities[i], Score: int(row.Score)}
		if i < len(names) {
			if name, ok := names[i].(string); ok {
				entries[i].Username = name
			}
		}
	}
	return entries, nil
}
