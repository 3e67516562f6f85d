package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"jewelmart/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Customer caching
	GetCustomer(ctx context.Context, customerID uuid.UUID) (*models.Customer, error)
	SetCustomer(ctx context.Context, customer *models.Customer, ttl time.Duration) error
	DeleteCustomer(ctx context.Context, customerID uuid.UUID) error

	// Dashboard caching
	GetDashboard(ctx context.Context, name string) (map[string]interface{}, error)
	SetDashboard(ctx context.Context, name string, stats map[string]interface{}, ttl time.Duration) error
	InvalidateDashboard(ctx context.Context) error

	// Generic string operations for token management
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
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

func (r *redisCacheService) GetCustomer(ctx context.Context, customerID uuid.UUID) (*models.Customer, error) {
	key := fmt.Sprintf("jewelmart:customer:%s", customerID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var customer models.Customer
	if err := json.Unmarshal(data, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *redisCacheService) SetCustomer(ctx context.Context, customer *models.Customer, ttl time.Duration) error {
	key := fmt.Sprintf("jewelmart:customer:%s", customer.ID.String())
	data, err := json.Marshal(customer)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteCustomer(ctx context.Context, customerID uuid.UUID) error {
	key := fmt.Sprintf("jewelmart:customer:%s", customerID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetDashboard(ctx context.Context, name string) (map[string]interface{}, error) {
	key := fmt.Sprintf("jewelmart:dashboard:%s", name)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var stats map[string]interface{}
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *redisCacheService) SetDashboard(ctx context.Context, name string, stats map[string]interface{}, ttl time.Duration) error {
	key := fmt.Sprintf("jewelmart:dashboard:%s", name)
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) InvalidateDashboard(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, "jewelmart:dashboard:*").Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
