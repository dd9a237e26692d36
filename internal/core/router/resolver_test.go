package router

import (
	"context"
	"testing"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTenantRepo struct {
	tenants []*domain.Tenant
}

func (f *fakeTenantRepo) Create(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error) {
	f.tenants = append(f.tenants, t)
	return t, nil
}

func (f *fakeTenantRepo) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	for _, t := range f.tenants {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "tenant", ID: id}
}

func (f *fakeTenantRepo) GetAll(ctx context.Context) ([]*domain.Tenant, error) {
	return f.tenants, nil
}

func (f *fakeTenantRepo) UpdateAdminChannel(ctx context.Context, id, channel, channelType string) error {
	return nil
}

func realtyTenant(id, name string) *domain.Tenant {
	return &domain.Tenant{
		ID:   id,
		Name: name,
		Verticals: domain.JSONB{
			"realty": map[string]interface{}{"keywords": []interface{}{"property"}},
		},
	}
}

func TestTenantRepoResolver_SingleCandidate(t *testing.T) {
	repo := &fakeTenantRepo{tenants: []*domain.Tenant{realtyTenant("t1", "Acme Realty")}}
	resolver := NewTenantRepoResolver(repo)

	tenant, ok := resolver.ResolveVertical(context.Background(), "realty", "")
	require.True(t, ok)
	assert.Equal(t, "t1", tenant.ID)
}

func TestTenantRepoResolver_NoCandidates(t *testing.T) {
	repo := &fakeTenantRepo{}
	resolver := NewTenantRepoResolver(repo)

	_, ok := resolver.ResolveVertical(context.Background(), "realty", "")
	assert.False(t, ok)
}

func TestTenantRepoResolver_DisambiguatesByHintPrefix(t *testing.T) {
	repo := &fakeTenantRepo{tenants: []*domain.Tenant{
		realtyTenant("agent101-xyz", "First Agency"),
		realtyTenant("agent202-abc", "Second Agency"),
	}}
	resolver := NewTenantRepoResolver(repo)

	tenant, ok := resolver.ResolveVertical(context.Background(), "realty", "agent202")
	require.True(t, ok)
	assert.Equal(t, "agent202-abc", tenant.ID)
}

func TestTenantRepoResolver_DisambiguatesByHintNameSubstring(t *testing.T) {
	repo := &fakeTenantRepo{tenants: []*domain.Tenant{
		realtyTenant("t1", "Downtown Realty"),
		realtyTenant("t2", "Marina Realty"),
	}}
	resolver := NewTenantRepoResolver(repo)

	tenant, ok := resolver.ResolveVertical(context.Background(), "realty", "marina")
	require.True(t, ok)
	assert.Equal(t, "t2", tenant.ID)
}

func TestTenantRepoResolver_AmbiguousHintFallsBackToFirst(t *testing.T) {
	repo := &fakeTenantRepo{tenants: []*domain.Tenant{
		realtyTenant("t1", "Downtown Realty"),
		realtyTenant("t2", "Marina Realty"),
	}}
	resolver := NewTenantRepoResolver(repo)

	tenant, ok := resolver.ResolveVertical(context.Background(), "realty", "no-such-hint")
	require.True(t, ok)
	assert.Equal(t, "t1", tenant.ID)
}
