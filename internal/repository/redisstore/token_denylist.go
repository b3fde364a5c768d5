package redisstore

import (
	"context"
	"errors"
	"time"

	"buddyai-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const denylistKeyPrefix = "auth:denylist:"

type TokenDenylist struct {
	client *redis.Client
}

func NewTokenDenylist(client *redis.Client) contract.TokenDenylist {
	return &TokenDenylist{client: client}
}

func (d *TokenDenylist) Revoke(ctx context.Context, tokenId string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, denylistKeyPrefix+tokenId, 1, ttl).Err()
}

func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenId string) (bool, error) {
	err := d.client.Get(ctx, denylistKeyPrefix+tokenId).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
