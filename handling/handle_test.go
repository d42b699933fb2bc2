package handling

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"coachfit_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
)

func TestHandleErrorStatusMapping(t *testing.T) {
	logger := gecho.NewDefaultLogger()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthenticated", lib.ErrUnauthenticated, http.StatusUnauthorized},
		{"invalid token", lib.ErrInvalidToken, http.StatusUnauthorized},
		{"invalid credentials", lib.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", lib.ErrForbidden, http.StatusForbidden},
		{"not found", lib.ErrNotFound, http.StatusNotFound},
		{"conflict", lib.ErrConflict, http.StatusConflict},
		{"wrapped forbidden", fmt.Errorf("authorize: %w", lib.ErrForbidden), http.StatusForbidden},
		{"validation", &lib.ValidationError{Errors: []lib.FieldError{{Field: "title", Message: "is required"}}}, http.StatusBadRequest},
		{"truncated body", io.ErrUnexpectedEOF, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(tt.err, "test", logger, rec)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandleErrorDependencyWriteIsInternal(t *testing.T) {
	logger := gecho.NewDefaultLogger()
	rec := httptest.NewRecorder()

	err := lib.WrapDependencyWrite("activity_media", "insert", errors.New("connection reset"))
	HandleError(err, "update failed", logger, rec)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
