// Package router implements the Channel Router (§4.2): resolving an
// inbound (channel, channel_identity, text) to a (tenant, vertical) pair
// via deep-link keywords, remembered session mapping, or a menu fallback.
package router

import (
	"context"
	"regexp"
	"strings"

	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/cache"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/domain"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/pkg/logger"
	"go.uber.org/zap"
)

// deepLinkPattern matches "start_<vertical>" or "start_<vertical>_<hint>".
// Anchored and built only from bounded character classes so it cannot
// backtrack catastrophically on adversarial input (§9 Open Question).
var deepLinkPattern = regexp.MustCompile(`^start_([a-z0-9]+)(?:_([a-z0-9]+))?$`)

// Outcome is the resolved routing decision for one inbound turn.
type Outcome struct {
	Tenant    domain.Tenant
	Vertical  string
	Hint      string
	IsNewRoute bool // true when this turn established the mapping (deep-link hit)
	MenuOnly   bool // true when no route could be resolved; caller should show the menu
}

// TenantResolver looks up the owning tenant by vertical name and, for a
// deep-link with a hint, may use the hint to disambiguate among tenants
// sharing a vertical (e.g. multiple agencies under "realty").
type TenantResolver interface {
	ResolveVertical(ctx context.Context, vertical, hint string) (domain.Tenant, bool)
}

// Router implements the three-tier precedence of §4.2.
type Router struct {
	cache    *cache.Cache
	resolver TenantResolver
	keywords map[string]string // substring keyword -> vertical, e.g. "property" -> "realty"
}

// New builds a Router. keywords supplements the "start_<vertical>"
// grammar with bare substring triggers tenants configure (§4.2: "property",
// "event", "support").
func New(c *cache.Cache, resolver TenantResolver, keywords map[string]string) *Router {
	return &Router{cache: c, resolver: resolver, keywords: keywords}
}

// Route resolves channelIdentity's tenant/vertical for this turn. A
// non-routable message (no deep-link, no keyword, no remembered mapping)
// returns Outcome{MenuOnly: true} and must not cause a Lead record to be
// created (§4.2).
func (r *Router) Route(ctx context.Context, channelIdentity, text string) (Outcome, error) {
	if vertical, hint, ok := r.matchDeepLink(text); ok {
		tenant, ok := r.resolver.ResolveVertical(ctx, vertical, hint)
		if !ok {
			return Outcome{MenuOnly: true}, nil
		}
		// A cache write failure degrades this turn's session-remember only
		// (§4.10 "session cache unavailable"): the deep-link hit still
		// resolved a real tenant, so the turn must proceed rather than fail.
		if err := r.cache.SetRoute(ctx, channelIdentity, cache.RouteMapping{
			TenantID: tenant.ID, Vertical: vertical, Hint: hint,
		}); err != nil {
			logger.Base().Warn("session cache unavailable writing route, continuing without session-remember",
				zap.String("channel_identity", channelIdentity), zap.Error(err))
		}
		return Outcome{Tenant: tenant, Vertical: vertical, Hint: hint, IsNewRoute: true}, nil
	}

	if mapping, ok := r.cache.GetRoute(ctx, channelIdentity); ok {
		tenant, ok := r.resolver.ResolveVertical(ctx, mapping.Vertical, mapping.Hint)
		if !ok {
			return Outcome{MenuOnly: true}, nil
		}
		return Outcome{Tenant: tenant, Vertical: mapping.Vertical, Hint: mapping.Hint}, nil
	}

	return Outcome{MenuOnly: true}, nil
}

// matchDeepLink checks the anchored "start_<vertical>_<hint>" grammar
// first, then falls back to bare substring keywords.
func (r *Router) matchDeepLink(text string) (vertical, hint string, ok bool) {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	if m := deepLinkPattern.FindStringSubmatch(trimmed); m != nil {
		return m[1], m[2], true
	}
	for keyword, vertical := range r.keywords {
		if strings.Contains(trimmed, keyword) {
			return vertical, "", true
		}
	}
	return "", "", false
}
