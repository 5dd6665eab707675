package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"idolagency/internal/model"

	"github.com/go-redis/redis/v8"
)

// PackCache stores ephemeral idol pack offers. An offer lives between
// creation and either redemption or TTL expiry; Forget after a
// successful claim makes redemption single-use.
type PackCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPackCache(client *redis.Client) *PackCache {
	return &PackCache{
		client: client,
		ttl:    model.PackTTLSeconds * time.Second,
	}
}

func (c *PackCache) key(packID string) string {
	return fmt.Sprintf("idol:pack:%s", packID)
}

func (c *PackCache) Put(ctx context.Context, packID string, offer *model.PackOffer) error {
	payload, err := json.Marshal(offer)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(packID), payload, c.ttl).Err()
}

// Get returns nil with no error when the offer is absent (expired or
// already redeemed).
func (c *PackCache) Get(ctx context.Context, packID string) (*model.PackOffer, error) {
	payload, err := c.client.Get(ctx, c.key(packID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var offer model.PackOffer
	if err := json.Unmarshal(payload, &offer); err != nil {
		return nil, err
	}
	return &offer, nil
}

func (c *PackCache) Forget(ctx context.Context, packID string) error {
	return c.client.Del(ctx, c.key(packID)).Err()
}

// TTLSeconds is the advertised lifetime of a fresh offer.
func (c *PackCache) TTLSeconds() int {
	return int(c.ttl / time.Second)
}
