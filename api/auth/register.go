package auth

import (
	"net/http"
	"time"

	"coachfit_server/handling"
	"coachfit_server/lib"
	"coachfit_server/structs"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleRegister(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.RegisterRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		handling.HandleError(err, "invalid registration payload", arm.logger, w)
		return
	}

	resp, err := arm.authService.Register(r.Context(), body)
	if err != nil {
		arm.logger.Warn("Registration failed", gecho.Field("error", lib.GetDetailForLogging(err)))
		handling.HandleError(err, "registration failed", arm.logger, w)
		return
	}

	lib.SetCookie(lib.AccessCookieName, resp.AccessToken, time.Now().Add(arm.cfg.Auth.AccessTokenExpiry), w)

	gecho.Success(w,
		gecho.WithMessage("Account created"),
		gecho.WithData(resp.User),
		gecho.Send(),
	)
}
