package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"clubhub/internal/cache"
	"clubhub/internal/logger"
	"clubhub/internal/models"
)

const liveTTL = 7 * 24 * time.Hour

// LiveRepository mirrors current standings into Redis sorted sets so the
// live-update path never touches DynamoDB. The mirror is maintained by the
// event subscriber; the document store stays authoritative.
type LiveRepository struct {
	client *redis.Client
	logger *logger.Logger
}

func NewLiveRepository(redisClient *cache.RedisClient, log *logger.Logger) *LiveRepository {
	return &LiveRepository{
		client: redisClient.GetClient(),
		logger: log.With("component", "LiveRepository"),
	}
}

// Key Generation (Private Helpers)

func scoreLeaderboardKey(scope models.Scope) string {
	return fmt.Sprintf("live:score:%s:%s", scope.Group, scope.Event)
}

func timeLeaderboardKey(group models.Group) string {
	return fmt.Sprintf("live:ta:%s", group)
}

// Write Operations

func (r *LiveRepository) SetScore(ctx context.Context, scope models.Scope, username string, score int64) error {
	key := scoreLeaderboardKey(scope)

	pipe := r.client.Pipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(score), Member: username})
	pipe.Expire(ctx, key, liveTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to mirror score",
			"error", err,
			"scope", scope.String(),
			"username", username,
		)
		return fmt.Errorf("failed to mirror score: %w", err)
	}

	return nil
}

func (r *LiveRepository) SetTime(ctx context.Context, group models.Group, username string, timeMillis int64) error {
	key := timeLeaderboardKey(group)

	pipe := r.client.Pipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(timeMillis), Member: username})
	pipe.Expire(ctx, key, liveTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to mirror lap time",
			"error", err,
			"group", group,
			"username", username,
		)
		return fmt.Errorf("failed to mirror lap time: %w", err)
	}

	return nil
}

func (r *LiveRepository) ClearScores(ctx context.Context, scope models.Scope) error {
	if err := r.client.Del(ctx, scoreLeaderboardKey(scope)).Err(); err != nil {
		return fmt.Errorf("failed to clear score mirror: %w", err)
	}
	return nil
}

func (r *LiveRepository) ClearTimes(ctx context.Context, group models.Group) error {
	if err := r.client.Del(ctx, timeLeaderboardKey(group)).Err(); err != nil {
		return fmt.Errorf("failed to clear time mirror: %w", err)
	}
	return nil
}

// Read Operations

type LiveEntry struct {
	Username string  `json:"username"`
	Value    float64 `json:"value"`
	Rank     int64   `json:"rank"`
}

// TopScores returns the n highest mirrored scores, best first.
func (r *LiveRepository) TopScores(ctx context.Context, scope models.Scope, n int64) ([]LiveEntry, error) {
	result, err := r.client.ZRevRangeWithScores(ctx, scoreLeaderboardKey(scope), 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read score mirror: %w", err)
	}
	return toLiveEntries(result), nil
}

// TopTimes returns the n fastest mirrored lap times, fastest first.
func (r *LiveRepository) TopTimes(ctx context.Context, group models.Group, n int64) ([]LiveEntry, error) {
	result, err := r.client.ZRangeWithScores(ctx, timeLeaderboardKey(group), 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read time mirror: %w", err)
	}
	return toLiveEntries(result), nil
}

func toLiveEntries(result []redis.Z) []LiveEntry {
	entries := make([]LiveEntry, len(result))
	for i, z := range result {
		username, _ := z.Member.(string)
		entries[i] = LiveEntry{
			Username: username,
			Value:    z.Score,
			Rank:     int64(i + 1),
		}
	}
	return entries
}
