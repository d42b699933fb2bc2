package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coachfit_server/lib"
	"coachfit_server/structs"
	"coachfit_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-for-auth-middleware"

func newTestMiddleware() *Middleware {
	cfg := &structs.Config{
		Auth: &structs.AuthConfig{AccessTokenSecret: testSecret},
	}
	return NewMiddleware(cfg, gecho.NewDefaultLogger(), nil)
}

func requestWithToken(t *testing.T, method, target, role string) *http.Request {
	t.Helper()

	now := time.Now()
	token, err := lib.GenerateAccessToken(&structs.AuthClaims{
		Sub:   uuid.New(),
		Email: "user@example.com",
		Role:  role,
		Iat:   now,
		Exp:   now.Add(time.Hour),
		Jti:   uuid.New(),
	}, testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, nil)
	req.AddCookie(&http.Cookie{Name: lib.AccessCookieName, Value: token})
	return req
}

// productTestRouter mirrors the product route layout: authentication on every
// route, the coach gate on mutations only.
func productTestRouter(mw *Middleware, reached *[]string) chi.Router {
	record := func(label string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			*reached = append(*reached, label)
			w.WriteHeader(http.StatusOK)
		}
	}

	r := chi.NewRouter()
	r.Route("/products", func(r chi.Router) {
		r.Use(mw.UserAuthMiddleware)

		r.Get("/{id}", record("fetch"))

		r.Group(func(r chi.Router) {
			r.Use(mw.CoachAuthMiddleware)

			r.Put("/{id}", record("update"))
			r.Delete("/{id}", record("delete"))
		})
	})
	return r
}

func TestClientCanReadProducts(t *testing.T) {
	mw := newTestMiddleware()
	var reached []string
	router := productTestRouter(mw, &reached)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, requestWithToken(t, http.MethodGet, "/products/"+uuid.NewString(), tables.RoleClient))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"fetch"}, reached)
}

func TestClientCannotMutateProducts(t *testing.T) {
	mw := newTestMiddleware()
	var reached []string
	router := productTestRouter(mw, &reached)

	for _, method := range []string{http.MethodPut, http.MethodDelete} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, requestWithToken(t, method, "/products/"+uuid.NewString(), tables.RoleClient))

		assert.Equal(t, http.StatusForbidden, rec.Code, method)
	}
	assert.Empty(t, reached)
}

func TestCoachCanMutateProducts(t *testing.T) {
	mw := newTestMiddleware()
	var reached []string
	router := productTestRouter(mw, &reached)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, requestWithToken(t, http.MethodPut, "/products/"+uuid.NewString(), tables.RoleCoach))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"update"}, reached)
}

func TestUnauthenticatedRequestIsRejected(t *testing.T) {
	mw := newTestMiddleware()
	var reached []string
	router := productTestRouter(mw, &reached)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, reached)
}

func TestCoachGateRequiresClaimsInContext(t *testing.T) {
	mw := newTestMiddleware()

	handler := mw.CoachAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without claims")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/products/x", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
