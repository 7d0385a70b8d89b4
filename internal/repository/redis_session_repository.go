package repository

import (
	"context"
	"fmt"
	"time"

	"worldforge-server/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Compile-time check to ensure redisSessionRepository implements SessionRepository
var _ SessionRepository = (*redisSessionRepository)(nil)

type redisSessionRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisSessionRepository creates a new Redis-backed SessionRepository.
func NewRedisSessionRepository(client *redis.Client, logger *zap.Logger) SessionRepository {
	return &redisSessionRepository{
		client: client,
		logger: logger.Named("RedisSessionRepo"),
	}
}

func sessionKey(jti string) string {
	return fmt.Sprintf("session_jti:%s", jti)
}

// Store writes both JTIs of a token pair keyed to the user, each with the
// TTL of its token, so revocation state expires together with the token.
func (r *redisSessionRepository) Store(ctx context.Context, userID uuid.UUID, tokens *models.SessionTokens) error {
	now := time.Now()
	accessTTL := time.Unix(tokens.AtExpires, 0).Sub(now)
	refreshTTL := time.Unix(tokens.RtExpires, 0).Sub(now)
	userIDStr := userID.String()

	pipe := r.client.Pipeline()
	pipe.Set(ctx, sessionKey(tokens.AccessJTI), userIDStr, accessTTL)
	pipe.Set(ctx, sessionKey(tokens.RefreshJTI), userIDStr, refreshTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to store session tokens in redis", zap.String("userID", userIDStr), zap.Error(err))
		return fmt.Errorf("failed to store session tokens in redis: %w", err)
	}
	r.logger.Debug("Session tokens stored",
		zap.String("userID", userIDStr),
		zap.Duration("accessTTL", accessTTL),
		zap.Duration("refreshTTL", refreshTTL),
	)
	return nil
}

// Exists reports whether the JTI is still live (issued and not revoked).
func (r *redisSessionRepository) Exists(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, sessionKey(jti)).Result()
	if err != nil {
		r.logger.Error("Failed to check session JTI in redis", zap.Error(err))
		return false, fmt.Errorf("failed to check session jti in redis: %w", err)
	}
	return n > 0, nil
}

// Revoke deletes the given JTIs. Missing keys are not an error; the
// returned count says how many were actually deleted.
func (r *redisSessionRepository) Revoke(ctx context.Context, jtis ...string) (int64, error) {
	keys := make([]string, 0, len(jtis))
	for _, jti := range jtis {
		if jti != "" {
			keys = append(keys, sessionKey(jti))
		}
	}
	if len(keys) == 0 {
		return 0, nil
	}
	deleted, err := r.client.Del(ctx, keys...).Result()
	if err != nil {
		r.logger.Error("Failed to revoke session tokens in redis", zap.Error(err))
		return 0, fmt.Errorf("failed to revoke session tokens in redis: %w", err)
	}
	return deleted, nil
}
