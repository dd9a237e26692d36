// Package handler wires inbound webhooks and the admin/ops surface onto
// the state machine, mirroring the teacher's HandlerManager shape: one
// constructor assembling every collaborator, one method per concern
// registering routes on a shared *mux.Router.
package handler

import (
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/cache"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/core/fsm"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/core/lock"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/core/oracle"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/core/router"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/repository"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/transport"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/internal/workers"
	"github.com/arezoojoon/ArtinSmartRealtyPro-sub000/pkg/logger"
	"github.com/gorilla/mux"
)

// HandlerManager owns every collaborator an inbound webhook or admin
// request needs and registers the full route table.
type HandlerManager struct {
	repos         repository.RepositoryManager
	cache         *cache.Cache
	router        *router.Router
	machine       *fsm.Machine
	oracleClient  oracle.Client
	dispatcher    *transport.Dispatcher
	matchNotifier *workers.MatchNotifier
	serviceSigningKey []byte
}

// NewHandlerManager assembles the handler layer from its collaborators.
// Any of oracleClient/dispatcher's underlying clients may be nil for
// channels a deployment hasn't configured; callers degrade per §4.10.
func NewHandlerManager(
	repos repository.RepositoryManager,
	c *cache.Cache,
	locks *lock.Manager,
	oracleClient oracle.Client,
	dispatcher *transport.Dispatcher,
	matchNotifier *workers.MatchNotifier,
	serviceSigningKey []byte,
) *HandlerManager {
	resolver := router.NewTenantRepoResolver(repos.Tenant())
	return &HandlerManager{
		repos:             repos,
		cache:             c,
		router:            router.New(c, resolver, loadKeywords()),
		machine:           fsm.New(locks),
		oracleClient:      oracleClient,
		dispatcher:        dispatcher,
		matchNotifier:     matchNotifier,
		serviceSigningKey: serviceSigningKey,
	}
}

// SetupAllRoutes registers every route this service exposes.
func (hm *HandlerManager) SetupAllRoutes(r *mux.Router) {
	r.Use(LoggingMiddleware)

	telegramHandler := NewTelegramWebhookHandler(hm)
	telegramHandler.Register(r)

	gatewayHandler := NewGatewayWebhookHandler(hm)
	gatewayHandler.Register(r)

	adminHandler := NewAdminHandler(hm)
	adminHandler.Register(r)

	logger.Base().Info("all cqc routes registered")
}
