package router

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/cache"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	tenants map[string]domain.Tenant
}

func (f *fakeResolver) ResolveVertical(ctx context.Context, vertical, hint string) (domain.Tenant, bool) {
	t, ok := f.tenants[vertical]
	return t, ok
}

// memRedis is an in-memory stand-in for redis.ServiceInterface.
type memRedis struct {
	data map[string]string
}

func newMemRedis() *memRedis { return &memRedis{data: map[string]string{}} }

func (m *memRedis) GetValue(ctx context.Context, key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", redis.ErrKeyNotExist
	}
	return v, nil
}

func (m *memRedis) SetValue(ctx context.Context, key, value string, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memRedis) DelValue(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *memRedis) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if _, exists := m.data[key]; exists {
		return false, nil
	}
	m.data[key] = value
	return true, nil
}

func (m *memRedis) Publish(ctx context.Context, channel string, message interface{}) error {
	return nil
}

func (m *memRedis) Subscribe(ctx context.Context, channel string, handler func(string)) error {
	return nil
}

// writeFailingRedis simulates a Redis blip on writes only, so GetRoute's
// "not found" path still works but SetRoute always fails.
type writeFailingRedis struct {
	*memRedis
}

func (w *writeFailingRedis) SetValue(ctx context.Context, key, value string, ttl time.Duration) error {
	return errors.New("redis unavailable")
}

func TestMatchDeepLink_Grammar(t *testing.T) {
	r := New(nil, &fakeResolver{}, nil)
	vertical, hint, ok := r.matchDeepLink("start_realty_agent101")
	assert.True(t, ok)
	assert.Equal(t, "realty", vertical)
	assert.Equal(t, "agent101", hint)
}

func TestMatchDeepLink_Keyword(t *testing.T) {
	r := New(nil, &fakeResolver{}, map[string]string{"property": "realty"})
	vertical, _, ok := r.matchDeepLink("tell me about this property")
	assert.True(t, ok)
	assert.Equal(t, "realty", vertical)
}

func TestMatchDeepLink_NoMatch(t *testing.T) {
	r := New(nil, &fakeResolver{}, nil)
	_, _, ok := r.matchDeepLink("hello there")
	assert.False(t, ok)
}

func TestRoute_DeepLinkUnknownVerticalIsMenuOnly(t *testing.T) {
	resolver := &fakeResolver{tenants: map[string]domain.Tenant{}}
	c := cache.New(newMemRedis())
	r := New(c, resolver, nil)

	outcome, err := r.Route(context.Background(), "chat-1", "start_unknownvert")
	require.NoError(t, err)
	assert.True(t, outcome.MenuOnly)
}

func TestRoute_DeepLinkThenSessionMemory(t *testing.T) {
	tenant := domain.Tenant{ID: "tenant-1", Name: "Acme Realty"}
	resolver := &fakeResolver{tenants: map[string]domain.Tenant{"realty": tenant}}
	c := cache.New(newMemRedis())
	r := New(c, resolver, nil)

	first, err := r.Route(context.Background(), "chat-1", "start_realty_agent101")
	require.NoError(t, err)
	assert.True(t, first.IsNewRoute)
	assert.Equal(t, "agent101", first.Hint)

	second, err := r.Route(context.Background(), "chat-1", "how much is this one")
	require.NoError(t, err)
	assert.False(t, second.IsNewRoute)
	assert.Equal(t, "realty", second.Vertical)
	assert.Equal(t, tenant.ID, second.Tenant.ID)
}

func TestRoute_DeepLinkSurvivesCacheWriteFailure(t *testing.T) {
	tenant := domain.Tenant{ID: "tenant-1", Name: "Acme Realty"}
	resolver := &fakeResolver{tenants: map[string]domain.Tenant{"realty": tenant}}
	c := cache.New(&writeFailingRedis{memRedis: newMemRedis()})
	r := New(c, resolver, nil)

	outcome, err := r.Route(context.Background(), "chat-1", "start_realty_agent101")
	require.NoError(t, err)
	assert.False(t, outcome.MenuOnly)
	assert.True(t, outcome.IsNewRoute)
	assert.Equal(t, tenant.ID, outcome.Tenant.ID)
	assert.Equal(t, "realty", outcome.Vertical)
}

func TestRoute_NoMappingFallsBackToMenu(t *testing.T) {
	resolver := &fakeResolver{}
	c := cache.New(newMemRedis())
	r := New(c, resolver, nil)

	outcome, err := r.Route(context.Background(), "chat-2", "hi")
	require.NoError(t, err)
	assert.True(t, outcome.MenuOnly)
}
