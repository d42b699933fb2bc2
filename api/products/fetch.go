package products

import (
	"net/http"

	"coachfit_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// FetchProduct handles GET /products/{id}: the full product view, program
// projection included. Any authenticated user may read the catalog.
func (prm *ProductRoutesManager) FetchProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil || id == uuid.Nil {
		prm.logger.Warn("Invalid product ID format", gecho.Field("id", chi.URLParam(r, "id")))
		gecho.BadRequest(w, gecho.WithMessage("Invalid product ID"), gecho.Send())
		return
	}

	view, err := prm.productService.GetProduct(ctx, id)
	if err != nil {
		handling.HandleError(err, "failed to fetch product", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(view),
		gecho.Send(),
	)
}
