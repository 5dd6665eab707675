package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenDenylist revokes bearer tokens before their natural expiry.
// Entries carry the token's own remaining TTL, so the set never grows
// past the active-token horizon.
type TokenDenylist struct {
	client *redis.Client
}

func NewTokenDenylist(client *redis.Client) *TokenDenylist {
	return &TokenDenylist{client: client}
}

// The raw token never lands in redis, only its digest.
func denylistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf("auth:denylist:%s", hex.EncodeToString(sum[:]))
}

// Revoke blocks the token until its expiry instant. Already-expired
// tokens are a no-op: the parser rejects those on its own.
func (d *TokenDenylist) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, denylistKey(token), "1", ttl).Err()
}

func (d *TokenDenylist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := d.client.Exists(ctx, denylistKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
