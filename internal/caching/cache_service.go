package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"tyremart/internal/models"
)

type CacheService interface {
	// Pattern caching
	GetPattern(ctx context.Context, patternID uuid.UUID) (*models.TyrePattern, error)
	SetPattern(ctx context.Context, pattern *models.TyrePattern, ttl time.Duration) error
	DeletePattern(ctx context.Context, patternID uuid.UUID) error

	// Distributor brand-set caching
	GetDistributorBrands(ctx context.Context, distributorID uuid.UUID) ([]models.Brand, error)
	SetDistributorBrands(ctx context.Context, distributorID uuid.UUID, brands []models.Brand, ttl time.Duration) error
	InvalidateDistributorBrands(ctx context.Context, distributorID uuid.UUID) error

	// Rate limiting, used by the OTP resend throttle
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	IncrementRateLimit(ctx context.Context, key string, window time.Duration) error

	// Generic string operations
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port as well as bare host:port
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetPattern(ctx context.Context, patternID uuid.UUID) (*models.TyrePattern, error) {
	key := fmt.Sprintf("tyremart:pattern:%s", patternID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var pattern models.TyrePattern
	if err := json.Unmarshal(data, &pattern); err != nil {
		return nil, err
	}
	return &pattern, nil
}

func (r *redisCacheService) SetPattern(ctx context.Context, pattern *models.TyrePattern, ttl time.Duration) error {
	key := fmt.Sprintf("tyremart:pattern:%s", pattern.ID.String())
	data, err := json.Marshal(pattern)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeletePattern(ctx context.Context, patternID uuid.UUID) error {
	key := fmt.Sprintf("tyremart:pattern:%s", patternID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetDistributorBrands(ctx context.Context, distributorID uuid.UUID) ([]models.Brand, error) {
	key := fmt.Sprintf("tyremart:distributor_brands:%s", distributorID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var brands []models.Brand
	if err := json.Unmarshal(data, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *redisCacheService) SetDistributorBrands(ctx context.Context, distributorID uuid.UUID, brands []models.Brand, ttl time.Duration) error {
	key := fmt.Sprintf("tyremart:distributor_brands:%s", distributorID.String())
	data, err := json.Marshal(brands)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) InvalidateDistributorBrands(ctx context.Context, distributorID uuid.UUID) error {
	key := fmt.Sprintf("tyremart:distributor_brands:%s", distributorID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := r.client.Get(ctx, "tyremart:ratelimit:"+key).Int()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	return count >= limit, nil
}

func (r *redisCacheService) IncrementRateLimit(ctx context.Context, key string, window time.Duration) error {
	fullKey := "tyremart:ratelimit:" + key
	pipe := r.client.TxPipeline()
	pipe.Incr(ctx, fullKey)
	pipe.Expire(ctx, fullKey, window)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, "tyremart:"+key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, "tyremart:"+key).Result()
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, "tyremart:"+key).Err()
}
