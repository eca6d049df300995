// Package cache provides a short-lived Redis cache for closure previews.
// Preview is the hot read path of the closure UI; the cache trims repeated
// full check passes. Initiate never reads it.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"workhive/internal/closure/service"
	platformredis "workhive/internal/platform/redis"
	id "workhive/pkg/domain"
)

type PreviewCache struct {
	client *platformredis.Client
	ttl    time.Duration
}

func NewPreviewCache(client *platformredis.Client, ttl time.Duration) *PreviewCache {
	return &PreviewCache{client: client, ttl: ttl}
}

func (c *PreviewCache) Get(ctx context.Context, orgID id.OrganizationID) (*service.Preview, error) {
	payload, err := c.client.Get(ctx, previewKey(orgID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cached preview: %w", err)
	}
	var preview service.Preview
	if err := json.Unmarshal(payload, &preview); err != nil {
		return nil, fmt.Errorf("decode cached preview: %w", err)
	}
	return &preview, nil
}

func (c *PreviewCache) Set(ctx context.Context, orgID id.OrganizationID, preview *service.Preview) error {
	payload, err := json.Marshal(preview)
	if err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	if err := c.client.Set(ctx, previewKey(orgID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached preview: %w", err)
	}
	return nil
}

// Invalidate drops the cached preview, e.g. right after a closure attempt.
func (c *PreviewCache) Invalidate(ctx context.Context, orgID id.OrganizationID) error {
	if err := c.client.Del(ctx, previewKey(orgID)).Err(); err != nil {
		return fmt.Errorf("invalidate cached preview: %w", err)
	}
	return nil
}

func previewKey(orgID id.OrganizationID) string {
	return "closure:preview:" + orgID.String()
}
