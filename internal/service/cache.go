package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sis-go-api/internal/dto"
)

// RosterCache keeps classroom rosters in Redis for the hot read path.
// Every miss or backend error falls through to the database.
type RosterCache interface {
	Get(ctx context.Context, classroomID uint) (*dto.RosterResponse, bool)
	Set(ctx context.Context, classroomID uint, roster dto.RosterResponse)
	Invalidate(ctx context.Context, classroomIDs ...uint)
}

type redisRosterCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRosterCache wraps a Redis client. A nil client yields a cache that
// never hits, so caching stays optional.
func NewRosterCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) RosterCache {
	return &redisRosterCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "roster_cache").Logger(),
	}
}

func rosterKey(classroomID uint) string {
	return fmt.Sprintf("roster:classroom:%d", classroomID)
}

func (c *redisRosterCache) Get(ctx context.Context, classroomID uint) (*dto.RosterResponse, bool) {
	if c.client == nil {
		return nil, false
	}

	payload, err := c.client.Get(ctx, rosterKey(classroomID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Uint("classroom_id", classroomID).Msg("roster cache read failed")
		}
		return nil, false
	}

	var roster dto.RosterResponse
	if err := json.Unmarshal(payload, &roster); err != nil {
		c.logger.Warn().Err(err).Uint("classroom_id", classroomID).Msg("roster cache entry corrupt")
		return nil, false
	}

	return &roster, true
}

func (c *redisRosterCache) Set(ctx context.Context, classroomID uint, roster dto.RosterResponse) {
	if c.client == nil {
		return
	}

	payload, err := json.Marshal(roster)
	if err != nil {
		c.logger.Error().Err(err).Uint("classroom_id", classroomID).Msg("failed to encode roster")
		return
	}
	if err := c.client.Set(ctx, rosterKey(classroomID), payload, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Uint("classroom_id", classroomID).Msg("roster cache write failed")
	}
}

func (c *redisRosterCache) Invalidate(ctx context.Context, classroomIDs ...uint) {
	if c.client == nil || len(classroomIDs) == 0 {
		return
	}

	keys := make([]string, 0, len(classroomIDs))
	for _, id := range classroomIDs {
		keys = append(keys, rosterKey(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("roster cache invalidation failed")
	}
}
