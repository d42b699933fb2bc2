package products

import (
	"net/http"

	"coachfit_server/api/middleware"
	"coachfit_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// DeleteProduct handles DELETE /products/{id}: the product and all its
// dependent rows go together.
func (prm *ProductRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil || id == uuid.Nil {
		prm.logger.Warn("Invalid product ID format", gecho.Field("id", chi.URLParam(r, "id")))
		gecho.BadRequest(w, gecho.WithMessage("Invalid product ID"), gecho.Send())
		return
	}

	claims, _ := middleware.GetClaimsFromContext(ctx)
	if err := prm.productService.DeleteProduct(ctx, claims, id); err != nil {
		handling.HandleError(err, "failed to delete product", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product deleted"),
		gecho.Send(),
	)
}
