package memory

import (
	"context"
	"time"

	"buddyai-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// TokenDenylist keeps revoked token ids in process memory until the token would
// have expired anyway. Used when Redis is not reachable.
type TokenDenylist struct {
	cache *cache.Cache
}

func NewTokenDenylist() contract.TokenDenylist {
	// Entries carry their own TTL; purge expired ones every 10 minutes.
	c := cache.New(cache.NoExpiration, 10*time.Minute)
	return &TokenDenylist{
		cache: c,
	}
}

func (d *TokenDenylist) Revoke(ctx context.Context, tokenId string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	d.cache.Set(tokenId, struct{}{}, ttl)
	return nil
}

func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenId string) (bool, error) {
	_, found := d.cache.Get(tokenId)
	return found, nil
}
