package redis

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"localscoop-server/config"
	"localscoop-server/db"
	"localscoop-server/models"
	"localscoop-server/sanitize"
)

// ErrInvalidOptionValue is returned when an option write fails format
// validation.
var ErrInvalidOptionValue = errors.New("invalid option value")

const PLACE_CACHE_KEY_FORMAT = "localscoop:place:%s"
const PLACE_CACHE_KEY_PATTERN = "localscoop:place:*"
const OPTION_KEY_FORMAT = "localscoop:option:%s"

// RedisPlaceDAO handles cached place records and persisted options in Redis.
// Cache keys are a one-way hash of the place ID salted with a process-wide
// secret, so cached entries cannot be enumerated by guessing IDs.
type RedisPlaceDAO struct {
	client db.RedisClient
	salt   string
	logger *zap.Logger
}

// NewRedisPlaceDAO initializes a RedisPlaceDAO with the Redis client.
func NewRedisPlaceDAO(client db.RedisClient, salt string, logger *zap.Logger) *RedisPlaceDAO {
	return &RedisPlaceDAO{client: client, salt: salt, logger: logger}
}

// CacheKey derives the namespaced, salted cache key for a place ID.
func (dao *RedisPlaceDAO) CacheKey(placeID string) string {
	sum := sha256.Sum256([]byte(placeID + dao.salt))
	return fmt.Sprintf(PLACE_CACHE_KEY_FORMAT, hex.EncodeToString(sum[:]))
}

// GetPlace returns the cached record for a place ID, or nil on a cache
// miss. A malformed cached value is treated as a miss, never returned.
func (dao *RedisPlaceDAO) GetPlace(placeID string) (*models.PlaceRecord, error) {
	str, err := dao.client.Get(dao.CacheKey(placeID))
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get place from redis: %w", err)
	}

	var record models.PlaceRecord
	if err := json.Unmarshal([]byte(str), &record); err != nil {
		dao.logger.Warn("discarding malformed cached place record", zap.Error(err))
		return nil, nil
	}
	return &record, nil
}

// SetPlace caches a record under the salted key with the given TTL.
func (dao *RedisPlaceDAO) SetPlace(placeID string, record *models.PlaceRecord, ttl time.Duration) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal place record: %w", err)
	}
	if err := dao.client.SetWithTTL(dao.CacheKey(placeID), string(data), ttl); err != nil {
		return fmt.Errorf("failed to set place record in redis: %w", err)
	}
	return nil
}

// PurgeAll removes every cached place record by prefix match. Used at
// teardown; options are left untouched.
func (dao *RedisPlaceDAO) PurgeAll() error {
	keys, err := dao.client.Keys(PLACE_CACHE_KEY_PATTERN)
	if err != nil {
		return fmt.Errorf("failed to list place cache keys: %w", err)
	}
	for _, k := range keys {
		if err := dao.client.Del(k); err != nil {
			return fmt.Errorf("failed to purge place cache key %s: %w", k, err)
		}
	}
	dao.logger.Info("purged place cache", zap.Int("entries", len(keys)))
	return nil
}

// GetOption reads a persisted configuration setting. Missing options
// resolve to the empty string.
func (dao *RedisPlaceDAO) GetOption(name string) (string, error) {
	val, err := dao.client.Get(fmt.Sprintf(OPTION_KEY_FORMAT, name))
	if errors.Is(err, db.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get option %s: %w", name, err)
	}
	return val, nil
}

// SetOption persists a configuration setting without expiry. The API key
// option only accepts values in valid credential format.
func (dao *RedisPlaceDAO) SetOption(name, value string) error {
	if name == config.API_KEY_OPTION_NAME && !sanitize.ValidCredential(value) {
		return ErrInvalidOptionValue
	}
	if err := dao.client.SetWithTTL(fmt.Sprintf(OPTION_KEY_FORMAT, name), value, 0); err != nil {
		return fmt.Errorf("failed to set option %s: %w", name, err)
	}
	return nil
}
