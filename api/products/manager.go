package products

import (
	"coachfit_server/api/middleware"
	"coachfit_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ProductRoutesManager struct {
	logger         *gecho.Logger
	productService *services.ProductService
	mw             *middleware.Middleware
}

func NewProductRoutesManager(
	logger *gecho.Logger,
	productService *services.ProductService,
	mw *middleware.Middleware,
) *ProductRoutesManager {
	return &ProductRoutesManager{
		logger:         logger,
		productService: productService,
		mw:             mw,
	}
}

func (prm *ProductRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Use(prm.mw.UserAuthMiddleware)

		// Reads are open to any authenticated user; only mutations are
		// restricted to the owning coach.
		r.Get("/{id}", prm.FetchProduct)

		r.Group(func(r chi.Router) {
			r.Use(prm.mw.CoachAuthMiddleware)

			r.Put("/{id}", prm.UpdateProduct)
			r.Delete("/{id}", prm.DeleteProduct)
		})
	})
}
