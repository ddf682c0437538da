package cache

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"paddock-backend/shared/config"
)

type CacheManager struct {
	client *redis.Client
	ctx    context.Context
}

var (
	globalCacheManager *CacheManager

	// AccessLevelTTL bounds how stale a cached (user, org) access level
	// may be. Membership mutations invalidate eagerly; the TTL is the
	// backstop.
	AccessLevelTTL = 15 * time.Minute
)

// InitCacheManager initializes the global cache manager
func InitCacheManager() error {
	cfg := config.GetConfig()

	redisDB, err := strconv.Atoi(cfg.RedisDB)
	if err != nil {
		log.Printf("❌ Invalid Redis DB number: %s, using default 0", cfg.RedisDB)
		redisDB = 0
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       redisDB,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	globalCacheManager = &CacheManager{
		client: client,
		ctx:    ctx,
	}

	log.Printf("✅ Redis Cache Manager initialized successfully - %s:%s DB:%d",
		cfg.RedisHost, cfg.RedisPort, redisDB)

	return nil
}

// GetCacheManager returns the global cache manager instance
func GetCacheManager() *CacheManager {
	if globalCacheManager == nil {
		if err := InitCacheManager(); err != nil {
			log.Printf("❌ Failed to initialize cache manager: %v", err)
			return nil
		}
	}
	return globalCacheManager
}

// AccessLevelKey generates the cache key for a (user, org) access level
func AccessLevelKey(userID, orgID uuid.UUID) string {
	return fmt.Sprintf("access:user:%s:org:%s", userID, orgID)
}

// SetAccessLevel caches the access level for a (user, org) pair.
// Level 0 (non-member) is cached too so repeated lookups for outsiders
// do not hit the database.
func (cm *CacheManager) SetAccessLevel(userID, orgID uuid.UUID, level int) error {
	if cm == nil || cm.client == nil {
		return fmt.Errorf("cache manager not initialized")
	}
	return cm.client.Set(cm.ctx, AccessLevelKey(userID, orgID), level, AccessLevelTTL).Err()
}

// GetAccessLevel returns the cached access level and whether it was present
func (cm *CacheManager) GetAccessLevel(userID, orgID uuid.UUID) (int, bool) {
	if cm == nil || cm.client == nil {
		return 0, false
	}

	value, err := cm.client.Get(cm.ctx, AccessLevelKey(userID, orgID)).Result()
	if err != nil {
		return 0, false
	}

	level, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return level, true
}

// InvalidateAccessLevel drops the cached level for one (user, org) pair
func (cm *CacheManager) InvalidateAccessLevel(userID, orgID uuid.UUID) {
	if cm == nil || cm.client == nil {
		return
	}
	if err := cm.client.Del(cm.ctx, AccessLevelKey(userID, orgID)).Err(); err != nil {
		log.Printf("❌ Failed to invalidate access cache for user %s org %s: %v", userID, orgID, err)
	}
}

// InvalidateOrgAccessLevels drops every cached level for an organization,
// used when the org itself is deleted.
func (cm *CacheManager) InvalidateOrgAccessLevels(orgID uuid.UUID) {
	if cm == nil || cm.client == nil {
		return
	}

	pattern := fmt.Sprintf("access:user:*:org:%s", orgID)
	iter := cm.client.Scan(cm.ctx, 0, pattern, 100).Iterator()
	for iter.Next(cm.ctx) {
		if err := cm.client.Del(cm.ctx, iter.Val()).Err(); err != nil {
			log.Printf("❌ Failed to delete cache key %s: %v", iter.Val(), err)
		}
	}
}

// IncrementCounter increments a rate-limit counter, setting the expiry on
// first use of the window. Returns the new count.
func (cm *CacheManager) IncrementCounter(key string, window time.Duration) (int64, error) {
	if cm == nil || cm.client == nil {
		return 0, fmt.Errorf("cache manager not initialized")
	}

	count, err := cm.client.Incr(cm.ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		cm.client.Expire(cm.ctx, key, window)
	}
	return count, nil
}

// SetBlock marks a client as blocked for the given duration
func (cm *CacheManager) SetBlock(key string, duration time.Duration) error {
	if cm == nil || cm.client == nil {
		return fmt.Errorf("cache manager not initialized")
	}
	return cm.client.Set(cm.ctx, key, "blocked", duration).Err()
}

// IsBlocked reports whether a block key is present
func (cm *CacheManager) IsBlocked(key string) bool {
	if cm == nil || cm.client == nil {
		return false
	}
	exists, err := cm.client.Exists(cm.ctx, key).Result()
	return err == nil && exists > 0
}
