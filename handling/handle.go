package handling

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"coachfit_server/lib"

	"github.com/MonkyMars/gecho"
)

// HandleError maps a service error to its HTTP response. Taxonomy errors get
// their proper status; anything else is a 500 with the detail kept server-side.
func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) {
	var validationErr *lib.ValidationError
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr),
		errors.As(err, &typeErr),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF):
		gecho.BadRequest(w, gecho.WithMessage("Malformed request body"), gecho.Send())
	case errors.As(err, &validationErr):
		gecho.BadRequest(w,
			gecho.WithMessage("Validation failed"),
			gecho.WithData(validationErr.Errors),
			gecho.Send(),
		)
	case errors.Is(err, lib.ErrUnauthenticated),
		errors.Is(err, lib.ErrInvalidToken),
		errors.Is(err, lib.ErrExpiredToken):
		gecho.Unauthorized(w, gecho.WithMessage("Authentication required"), gecho.Send())
	case errors.Is(err, lib.ErrInvalidCredentials):
		gecho.Unauthorized(w, gecho.WithMessage("Invalid credentials"), gecho.Send())
	case errors.Is(err, lib.ErrForbidden):
		gecho.Forbidden(w, gecho.WithMessage("You do not have access to this resource"), gecho.Send())
	case errors.Is(err, lib.ErrNotFound):
		gecho.NotFound(w, gecho.WithMessage("Resource not found"), gecho.Send())
	case errors.Is(err, lib.ErrConflict):
		gecho.Conflict(w, gecho.WithMessage("Resource already exists"), gecho.Send())
	default:
		logger.Error("An error occurred",
			gecho.Field("error", lib.GetDetailForLogging(err)),
			gecho.Field("msg", msg),
			gecho.WithCallerSkip(3),
		)
		gecho.InternalServerError(w, gecho.Send())
	}
}
