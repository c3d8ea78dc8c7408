package cache

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shortfeed/resolver-service/internal/utils"
	"shortfeed/resolver-service/internal/video"
)

// Service 解析结果的记忆化缓存。解析管线本身不缓存，只有调用方显式注入
// 本服务时才启用；同一URL在TTL内直接命中已解析的记录。
type Service struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewService 创建缓存服务
func NewService(redisClient *redis.Client, ttl time.Duration) *Service {
	return &Service{
		redis: redisClient,
		ttl:   ttl,
	}
}

// Get 从缓存获取解析记录
func (s *Service) Get(ctx context.Context, url string) (*video.Record, error) {
	key := generateCacheKey(url)

	data, err := s.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, utils.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var rec video.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached record: %w", err)
	}

	return &rec, nil
}

// Set 将解析记录写入缓存
func (s *Service) Set(ctx context.Context, url string, rec *video.Record) error {
	key := generateCacheKey(url)

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

// Delete 删除缓存
func (s *Service) Delete(ctx context.Context, url string) error {
	key := generateCacheKey(url)
	return s.redis.Del(ctx, key).Err()
}

// generateCacheKey 生成缓存key
func generateCacheKey(url string) string {
	hash := md5.Sum([]byte(url))
	return fmt.Sprintf("resolver:url:%x", hash)
}
