package auth

import (
	"net/http"

	"coachfit_server/lib"
	"coachfit_server/structs"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleLogout(w http.ResponseWriter, r *http.Request) {
	lib.ClearCookie(lib.AccessCookieName, w)

	gecho.Success(w,
		gecho.WithData(structs.LogoutResponse{Message: "Logged out"}),
		gecho.Send(),
	)
}
