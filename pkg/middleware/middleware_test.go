package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"kickstreet/internal/usecase"
	"kickstreet/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAuth struct {
	identities map[string]utils.Identity
	err        error
}

func (s stubAuth) Authenticate(_ context.Context, token string) (utils.Identity, error) {
	if s.err != nil {
		return utils.Identity{}, s.err
	}
	id, ok := s.identities[token]
	if !ok {
		return utils.Identity{}, &usecase.Error{Kind: usecase.ErrUnauthorized, Message: "invalid"}
	}
	return id, nil
}

// echoIdentity answers 200 with the caller's role, or "guest".
var echoIdentity = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.GetIdentity(r.Context())
	if !ok {
		w.Write([]byte("guest"))
		return
	}
	w.Write([]byte(id.Role))
})

func serve(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func newStubAuth() stubAuth {
	return stubAuth{identities: map[string]utils.Identity{
		"user-token":  {UserID: uuid.New(), Role: "user"},
		"admin-token": {UserID: uuid.New(), Role: "admin"},
	}}
}

func TestRequireAuth(t *testing.T) {
	h := RequireAuth(newStubAuth(), zap.NewNop())(echoIdentity)

	assert.Equal(t, http.StatusUnauthorized, serve(h, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "forged").Code)

	rec := serve(h, "user-token")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user", rec.Body.String())
}

func TestRequireAuth_BackendFailure(t *testing.T) {
	h := RequireAuth(stubAuth{err: errors.New("db down")}, zap.NewNop())(echoIdentity)

	assert.Equal(t, http.StatusInternalServerError, serve(h, "user-token").Code)
}

func TestRequireAuth_SchemeIsCaseInsensitive(t *testing.T) {
	h := RequireAuth(newStubAuth(), zap.NewNop())(echoIdentity)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer user-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req.Header.Set("Authorization", "Token user-token")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuth(t *testing.T) {
	h := OptionalAuth(newStubAuth(), zap.NewNop())(echoIdentity)

	assert.Equal(t, "guest", serve(h, "").Body.String())
	assert.Equal(t, "guest", serve(h, "forged").Body.String())
	assert.Equal(t, "admin", serve(h, "admin-token").Body.String())
}

func TestAdmin(t *testing.T) {
	log := zap.NewNop()
	h := RequireAuth(newStubAuth(), log)(Admin(log)(echoIdentity))

	assert.Equal(t, http.StatusUnauthorized, serve(h, "").Code)
	assert.Equal(t, http.StatusForbidden, serve(h, "user-token").Code)
	assert.Equal(t, http.StatusOK, serve(h, "admin-token").Code)

	// without RequireAuth in front there is no identity at all
	assert.Equal(t, http.StatusUnauthorized, serve(Admin(log)(echoIdentity), "admin-token").Code)
}

func TestRecover(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := serve(h, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":false,"message":"Internal server error"}`, rec.Body.String())
}

func TestLoggerKeepsStatus(t *testing.T) {
	h := Logger(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	assert.Equal(t, http.StatusTeapot, serve(h, "").Code)
}

func TestCORSPreflight(t *testing.T) {
	h := CORS([]string{"http://shop.test"})(echoIdentity)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://shop.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://shop.test", rec.Header().Get("Access-Control-Allow-Origin"))
}
