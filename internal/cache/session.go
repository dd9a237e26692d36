// Package cache implements the Session Cache (§3, §4.2, §6): ephemeral
// per-user routing and conversation context with a 24h sliding TTL.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/pkg/logger"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/pkg/redis"
	"go.uber.org/zap"
)

// TTL is the sliding-window lifetime of route and session entries (§3, §6).
const TTL = 24 * time.Hour

const (
	sessionKeyPrefix = "session"
	routeKeyPrefix   = "route"
)

// RouteMapping binds a channel identity to a tenant+vertical, set by a
// deep-link hit and read on subsequent turns (§4.2 precedence tier 2).
type RouteMapping struct {
	TenantID string `json:"tenant_id"`
	Vertical string `json:"vertical"`
	Hint     string `json:"hint,omitempty"`
}

// Session is the ephemeral per-(tenant,channel) working set a handler turn
// may stash scratch data in, distinct from the durable Lead row.
type Session struct {
	TenantID        string                 `json:"tenant_id"`
	ChannelIdentity string                 `json:"channel_identity"`
	Scratch         map[string]interface{} `json:"scratch"`
}

// Cache is the Session Cache. A nil Cache (e.g. constructed around a
// failed Redis dial) is not supported. Redis read errors are logged and
// treated as a cache miss by GetRoute/GetSession; write errors are
// returned, and router.Route logs a failed SetRoute and continues, per the
// §4.10 "Session cache unavailable" failure row.
type Cache struct {
	redisSvc redis.ServiceInterface
}

// New wraps a Redis service as a Session Cache.
func New(redisSvc redis.ServiceInterface) *Cache {
	return &Cache{redisSvc: redisSvc}
}

func routeKey(channelIdentity string) string {
	return fmt.Sprintf("%s:%s", routeKeyPrefix, channelIdentity)
}

func sessionKey(tenantID, channelIdentity string) string {
	return fmt.Sprintf("%s:%s:%s", sessionKeyPrefix, tenantID, channelIdentity)
}

// GetRoute reads the sliding-window route mapping for channelIdentity, if
// any, refreshing its TTL on a hit.
func (c *Cache) GetRoute(ctx context.Context, channelIdentity string) (*RouteMapping, bool) {
	raw, err := c.redisSvc.GetValue(ctx, routeKey(channelIdentity))
	if err != nil {
		if err != redis.ErrKeyNotExist {
			logger.Base().Warn("session cache unavailable reading route", zap.Error(err))
		}
		return nil, false
	}
	var m RouteMapping
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		logger.Base().Warn("corrupt route mapping", zap.String("channel_identity", channelIdentity), zap.Error(err))
		return nil, false
	}
	// Sliding window: extend TTL on every hit.
	_ = c.redisSvc.SetValue(ctx, routeKey(channelIdentity), raw, TTL)
	return &m, true
}

// SetRoute writes (or overwrites) the route mapping with a fresh 24h TTL,
// per a deep-link hit (§4.2 precedence tier 1).
func (c *Cache) SetRoute(ctx context.Context, channelIdentity string, m RouteMapping) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return c.redisSvc.SetValue(ctx, routeKey(channelIdentity), string(data), TTL)
}

// GetSession reads the conversation scratch map, refreshing TTL on a hit.
func (c *Cache) GetSession(ctx context.Context, tenantID, channelIdentity string) (*Session, bool) {
	raw, err := c.redisSvc.GetValue(ctx, sessionKey(tenantID, channelIdentity))
	if err != nil {
		return nil, false
	}
	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, false
	}
	_ = c.redisSvc.SetValue(ctx, sessionKey(tenantID, channelIdentity), raw, TTL)
	return &s, true
}

// SetSession writes the session with a fresh TTL (last-writer-wins, §5).
func (c *Cache) SetSession(ctx context.Context, s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.redisSvc.SetValue(ctx, sessionKey(s.TenantID, s.ChannelIdentity), string(data), TTL)
}
