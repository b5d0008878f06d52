// Package cache is a thin JSON cache over redis used to keep hot user and
// stats reads off the database. Every mutation path invalidates; the cache
// never serves as a source of truth.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"upitrack/internal/models"
)

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// User caching
func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}
	keys := []string{
		s.GenerateKey("user", "id", user.ID),
		s.GenerateKey("user", "username", user.Username),
	}
	for _, key := range keys {
		if err := s.Set(ctx, key, user); err != nil {
			return err
		}
	}
	return nil
}

func (s *CacheService) GetUserByID(ctx context.Context, id uint) (*models.User, bool) {
	var user models.User
	found, err := s.Get(ctx, s.GenerateKey("user", "id", id), &user)
	if err != nil || !found {
		return nil, false
	}
	return &user, true
}

func (s *CacheService) InvalidateUser(ctx context.Context, user *models.User) error {
	return s.Delete(ctx,
		s.GenerateKey("user", "id", user.ID),
		s.GenerateKey("user", "username", user.Username),
	)
}

// Stats caching
func (s *CacheService) CacheStats(ctx context.Context, stats *models.Stats) error {
	if stats == nil {
		return errors.New("cannot cache nil stats")
	}
	return s.Set(ctx, s.GenerateKey("stats", "user", stats.UserID), stats)
}

func (s *CacheService) GetStats(ctx context.Context, userID uint) (*models.Stats, bool) {
	var stats models.Stats
	found, err := s.Get(ctx, s.GenerateKey("stats", "user", userID), &stats)
	if err != nil || !found {
		return nil, false
	}
	return &stats, true
}

func (s *CacheService) InvalidateStats(ctx context.Context, userID uint) error {
	return s.Delete(ctx, s.GenerateKey("stats", "user", userID))
}

func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

func (s *CacheService) Close() error {
	return s.client.Close()
}
