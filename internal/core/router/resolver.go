package router

import (
	"context"
	"strings"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/repository"
)

// TenantRepoResolver implements TenantResolver against the Entity Store,
// matching a deep-link's vertical against each tenant's configured
// Verticals map and, when several tenants share a vertical, using hint as
// a tenant-slug disambiguator (a prefix match against tenant id or a
// case-insensitive substring of tenant name).
type TenantRepoResolver struct {
	tenants repository.TenantRepository
}

// NewTenantRepoResolver builds a resolver over repos.
func NewTenantRepoResolver(tenants repository.TenantRepository) *TenantRepoResolver {
	return &TenantRepoResolver{tenants: tenants}
}

func (r *TenantRepoResolver) ResolveVertical(ctx context.Context, vertical, hint string) (domain.Tenant, bool) {
	all, err := r.tenants.GetAll(ctx)
	if err != nil {
		return domain.Tenant{}, false
	}

	var candidates []*domain.Tenant
	for _, t := range all {
		if _, ok := t.ResolveVerticals()[vertical]; ok {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return domain.Tenant{}, false
	}
	if len(candidates) == 1 || hint == "" {
		return *candidates[0], true
	}

	for _, t := range candidates {
		if strings.HasPrefix(t.ID, hint) || strings.Contains(strings.ToLower(t.Name), strings.ToLower(hint)) {
			return *t, true
		}
	}
	return *candidates[0], true
}
