package lib

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleBody struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=coach client"`
}

func jsonRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestExtractAndValidateBody(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		body, err := ExtractAndValidateBody[sampleBody](jsonRequest(`{"email":"a@b.com","role":"coach"}`))
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", body.Email)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := ExtractAndValidateBody[sampleBody](jsonRequest(`{"email":`))
		assert.Error(t, err)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		_, err := ExtractAndValidateBody[sampleBody](jsonRequest(`{"email":"a@b.com","role":"coach","extra":1}`))
		assert.Error(t, err)
	})

	t.Run("validation failure carries field errors", func(t *testing.T) {
		_, err := ExtractAndValidateBody[sampleBody](jsonRequest(`{"email":"not-an-email","role":"admin"}`))
		require.Error(t, err)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Len(t, vErr.Errors, 2)
	})
}

func TestValidateStruct(t *testing.T) {
	assert.NoError(t, ValidateStruct(&sampleBody{Email: "a@b.com", Role: "client"}))
	assert.Error(t, ValidateStruct(&sampleBody{Email: "", Role: "client"}))
}
