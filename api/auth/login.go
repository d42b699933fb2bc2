package auth

import (
	"net/http"
	"time"

	"coachfit_server/handling"
	"coachfit_server/lib"
	"coachfit_server/structs"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.AuthRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check your login information and try again"), gecho.Send())
		return
	}

	resp, err := arm.authService.Login(r.Context(), body)
	if err != nil {
		arm.logger.Warn("Login failed", gecho.Field("error", lib.GetDetailForLogging(err)))
		handling.HandleError(err, "login failed", arm.logger, w)
		return
	}

	lib.SetCookie(lib.AccessCookieName, resp.AccessToken, time.Now().Add(arm.cfg.Auth.AccessTokenExpiry), w)

	gecho.Success(w,
		gecho.WithMessage("Login successful"),
		gecho.WithData(resp.User),
		gecho.Send(),
	)
}
