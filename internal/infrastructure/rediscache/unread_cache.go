package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/astillero-mes/yacht-mes/internal/application/notification"
)

var _ notification.UnreadCache = (*UnreadCache)(nil)

// TTL del contador cacheado; tras expirar se repuebla desde SQL.
const unreadTTL = 5 * time.Minute

// UnreadCache contador de notificaciones sin leer por usuario sobre Redis.
// Clave: notifications:unread:<userID>.
type UnreadCache struct {
	client *redis.Client
}

// NewClient crea el cliente Redis desde la URL (redis://host:port/db) y verifica
// conectividad con un ping.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewUnreadCache construye el cache sobre un cliente ya conectado.
func NewUnreadCache(client *redis.Client) *UnreadCache {
	return &UnreadCache{client: client}
}

func key(userID int64) string {
	return fmt.Sprintf("notifications:unread:%d", userID)
}

// Get devuelve el contador cacheado; ok=false en cache miss.
func (c *UnreadCache) Get(ctx context.Context, userID int64) (int64, bool, error) {
	count, err := c.client.Get(ctx, key(userID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return count, true, nil
}

// Set escribe el contador con TTL.
func (c *UnreadCache) Set(ctx context.Context, userID, count int64) error {
	return c.client.Set(ctx, key(userID), count, unreadTTL).Err()
}

// Invalidate borra el contador; la próxima lectura repuebla desde SQL.
func (c *UnreadCache) Invalidate(ctx context.Context, userID int64) error {
	return c.client.Del(ctx, key(userID)).Err()
}
