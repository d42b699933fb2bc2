package auth

import (
	"net/http"

	"coachfit_server/api/middleware"
	"coachfit_server/handling"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
		return
	}

	user, err := arm.authService.Me(r.Context(), claims.Sub)
	if err != nil {
		handling.HandleError(err, "failed to load profile", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(user),
		gecho.Send(),
	)
}
