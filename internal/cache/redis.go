package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/storefront-api/internal/config"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "sf"

var (
	mu          sync.RWMutex
	redisClient *redis.Client
	redisPrefix = defaultKeyPrefix
)

// windowScript 固定窗口计数：首次命中时设置过期，返回 {count, ttl}
var windowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// InitRedis 初始化 Redis 客户端，未启用时清空已有客户端
func InitRedis(cfg *config.RedisConfig) error {
	mu.Lock()
	defer mu.Unlock()
	if cfg == nil || !cfg.Enabled {
		redisClient = nil
		return nil
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	redisPrefix = strings.TrimSpace(cfg.Prefix)
	if redisPrefix == "" {
		redisPrefix = defaultKeyPrefix
	}
	redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return nil
}

func client() *redis.Client {
	mu.RLock()
	defer mu.RUnlock()
	return redisClient
}

// Enabled 判断缓存是否启用
func Enabled() bool {
	return client() != nil
}

// Ping 检查 Redis 连通性
func Ping(ctx context.Context) error {
	rdb := client()
	if rdb == nil {
		return nil
	}
	return rdb.Ping(ctx).Err()
}

// Close 关闭 Redis 客户端
func Close() error {
	mu.Lock()
	rdb := redisClient
	redisClient = nil
	mu.Unlock()
	if rdb == nil {
		return nil
	}
	return rdb.Close()
}

// GetJSON 读取 JSON 缓存，未命中返回 false
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	rdb := client()
	if rdb == nil {
		return false, nil
	}
	raw, err := rdb.Get(ctx, buildKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 写入 JSON 缓存
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	rdb := client()
	if rdb == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, buildKey(key), payload, ttl).Err()
}

// Del 删除缓存
func Del(ctx context.Context, key string) error {
	rdb := client()
	if rdb == nil {
		return nil
	}
	return rdb.Del(ctx, buildKey(key)).Err()
}

// HitWindow 对 key 做固定窗口计数，返回窗口内累计次数与剩余秒数。
// 缓存未启用时返回 ErrDisabled。
func HitWindow(ctx context.Context, key string, windowSeconds int) (int64, int64, error) {
	rdb := client()
	if rdb == nil {
		return 0, 0, ErrDisabled
	}
	values, err := windowScript.Run(ctx, rdb, []string{buildKey(key)}, windowSeconds).Int64Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(values) < 2 {
		return 0, 0, fmt.Errorf("unexpected window script result: %v", values)
	}
	return values[0], values[1], nil
}

// ErrDisabled 缓存未启用
var ErrDisabled = errors.New("cache disabled")

func buildKey(key string) string {
	mu.RLock()
	prefix := redisPrefix
	mu.RUnlock()
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return prefix
	}
	return prefix + ":" + trimmed
}
