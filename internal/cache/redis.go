package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisStore - cache partagé entre les postes admin. La donnée est gardée
// sans expiration et un marqueur de fraîcheur porte le TTL : une liste
// périmée reste servable quand le backend est en panne.
type redisStore struct {
	client *redis.Client
}

func NewRedis(host, password string) (Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         host,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}

	log.Println("✅ Redis connecté avec succès")
	return &redisStore{client: client}, nil
}

func (s *redisStore) Get(ctx context.Context, key string) (data []byte, fresh bool) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	_, err = s.client.Get(ctx, key+":fresh").Result()
	return val, err == nil
}

func (s *redisStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		log.Printf("⚠️ Écriture cache %s: %v", key, err)
		return
	}
	s.client.Set(ctx, key+":fresh", "1", ttl)
}

func (s *redisStore) Close() error {
	return s.client.Close()
}
