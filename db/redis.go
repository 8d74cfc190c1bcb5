// api/db/redis.go
package db

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	logger "github.com/medicube/radgate/api/logging"
	"github.com/medicube/radgate/api/model"
	pdp_model "github.com/medicube/radgate/api/pdp/model"
)

var (
	RedisClient   *redis.Client
	encryptionKey []byte
)

func InitRedis() error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:         viper.GetString("redis.addr"),
		Password:     viper.GetString("redis.password"),
		DB:           viper.GetInt("redis.db"),
		DialTimeout:  viper.GetDuration("redis.dialTimeout"),
		ReadTimeout:  viper.GetDuration("redis.readTimeout"),
		WriteTimeout: viper.GetDuration("redis.writeTimeout"),
		PoolSize:     viper.GetInt("redis.poolSize"),
		PoolTimeout:  viper.GetDuration("redis.poolTimeout"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	encryptionKey = []byte(viper.GetString("redis.encryptionKey"))
	if len(encryptionKey) != 32 {
		return fmt.Errorf("invalid encryption key length: must be 32 bytes")
	}

	logger.Info("Successfully connected to Redis")
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
}

func encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

func decisionKey(userID, projectID int64, level model.ResourceLevel, resourceID int64) string {
	return fmt.Sprintf("decision:%d:%d:%s:%d", userID, projectID, level, resourceID)
}

// CacheDecision stores an evaluated decision under a short TTL. Decisions
// contain patient-linked reason codes, so cached values are encrypted like
// every other cache entry.
func CacheDecision(ctx context.Context, userID, projectID int64, level model.ResourceLevel, resourceID int64, decision pdp_model.Decision) error {
	decisionJSON, err := json.Marshal(decision)
	if err != nil {
		return fmt.Errorf("failed to marshal decision: %w", err)
	}

	encryptedDecision, err := encrypt(decisionJSON)
	if err != nil {
		return fmt.Errorf("failed to encrypt decision: %w", err)
	}

	key := decisionKey(userID, projectID, level, resourceID)
	ttl := viper.GetDuration("redis.decisionCacheTTL")
	err = RedisClient.Set(ctx, key, base64.StdEncoding.EncodeToString(encryptedDecision), ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to cache decision: %w", err)
	}

	logger.Debug("Decision cached successfully", zap.String("key", key))
	return nil
}

// GetCachedDecision returns nil without error on a cache miss.
func GetCachedDecision(ctx context.Context, userID, projectID int64, level model.ResourceLevel, resourceID int64) (*pdp_model.Decision, error) {
	key := decisionKey(userID, projectID, level, resourceID)
	encoded, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached decision: %w", err)
	}

	encrypted, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cached decision: %w", err)
	}

	decisionJSON, err := decrypt(encrypted)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt cached decision: %w", err)
	}

	var decision pdp_model.Decision
	if err := json.Unmarshal(decisionJSON, &decision); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached decision: %w", err)
	}
	return &decision, nil
}

// CacheProjectConditions stores the ordered condition list for a project.
func CacheProjectConditions(ctx context.Context, projectID int64, conditions []model.AccessCondition) error {
	conditionsJSON, err := json.Marshal(conditions)
	if err != nil {
		return fmt.Errorf("failed to marshal conditions: %w", err)
	}

	encryptedConditions, err := encrypt(conditionsJSON)
	if err != nil {
		return fmt.Errorf("failed to encrypt conditions: %w", err)
	}

	key := fmt.Sprintf("conditions:project:%d", projectID)
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err = RedisClient.Set(ctx, key, base64.StdEncoding.EncodeToString(encryptedConditions), defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache conditions: %w", err)
	}

	logger.Debug("Project conditions cached successfully", zap.Int64("projectID", projectID))
	return nil
}

func GetCachedProjectConditions(ctx context.Context, projectID int64) ([]model.AccessCondition, error) {
	key := fmt.Sprintf("conditions:project:%d", projectID)
	encoded, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached conditions: %w", err)
	}

	encrypted, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cached conditions: %w", err)
	}

	conditionsJSON, err := decrypt(encrypted)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt cached conditions: %w", err)
	}

	var conditions []model.AccessCondition
	if err := json.Unmarshal(conditionsJSON, &conditions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached conditions: %w", err)
	}
	return conditions, nil
}

func DeleteCachedProjectConditions(ctx context.Context, projectID int64) error {
	key := fmt.Sprintf("conditions:project:%d", projectID)
	if err := RedisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete cached conditions: %w", err)
	}
	return nil
}

// RateLimit allows at most limit requests per window for the given key.
func RateLimit(ctx context.Context, key string, limit int, per time.Duration) (bool, error) {
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	count, err := RedisClient.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if count == 1 {
		if err := RedisClient.Expire(ctx, redisKey, per).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit expiry: %w", err)
		}
	}

	return count <= int64(limit), nil
}
