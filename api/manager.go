package api

import (
	"coachfit_server/api/auth"
	"coachfit_server/api/health"
	"coachfit_server/api/middleware"
	"coachfit_server/api/products"
	"coachfit_server/services"
	"coachfit_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	productRoutes *products.ProductRoutesManager
	healthRoutes  *health.HealthRoutesManager
	authRoutes    *auth.AuthRoutesManager
}

func NewRouterManager(
	logger *gecho.Logger,
	sm *services.ServiceManager,
	cfg *structs.Config,
	mw *middleware.Middleware,
) *routerManager {
	return &routerManager{
		productRoutes: products.NewProductRoutesManager(logger, sm.Product, mw),
		healthRoutes:  health.NewHealthRoutesManager(sm.Health),
		authRoutes:    auth.NewAuthRoutesManager(logger, sm.Auth, cfg, mw),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.productRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)
}
