package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/infra/memstore"
	"github.com/BruksfildServices01/barber-queue/internal/middleware"
)

const testSecret = "test-secret"

func newAuthRouter(t *testing.T) (*gin.Engine, *AuthHandler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memstore.New()
	h := NewAuthHandler(store, testSecret)
	h.EmailDomainOK = func(string) bool { return true }

	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)

	me := NewMeHandler(store)
	shop := NewBarbershopHandler(store)
	secured := r.Group("/me", middleware.AuthMiddleware(testSecret))
	secured.GET("", me.GetMe)
	secured.PATCH("/barbershop", shop.UpdateMeBarbershop)
	return r, h
}

func post(r http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	out := map[string]any{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func registerBody(slug, email string) map[string]any {
	return map[string]any{
		"barbershop_name": "Navalha de Ouro",
		"barbershop_slug": slug,
		"name":            "Zé",
		"email":           email,
		"password":        "segredo123",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	r, _ := newAuthRouter(t)

	w, body := post(r, http.MethodPost, "/register", "", registerBody("Navalha", "ZE@navalha.com"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, body["token"])
	shop := body["barbershop"].(map[string]any)
	assert.Equal(t, "navalha", shop["slug"])
	assert.Equal(t, "America/Sao_Paulo", shop["timezone"])

	w, body = post(r, http.MethodPost, "/login", "", map[string]any{
		"email": "ze@navalha.com", "password": "segredo123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token := body["token"].(string)

	w, body = post(r, http.MethodGet, "/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ze@navalha.com", body["user"].(map[string]any)["email"])

	w, body = post(r, http.MethodPost, "/login", "", map[string]any{
		"email": "ze@navalha.com", "password": "errada",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", body["error_code"])

	w, _ = post(r, http.MethodPost, "/login", "", map[string]any{
		"email": "ninguem@navalha.com", "password": "segredo123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterConflicts(t *testing.T) {
	r, _ := newAuthRouter(t)

	w, _ := post(r, http.MethodPost, "/register", "", registerBody("navalha", "ze@navalha.com"))
	require.Equal(t, http.StatusCreated, w.Code)

	w, body := post(r, http.MethodPost, "/register", "", registerBody("navalha", "outro@navalha.com"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slug_already_exists", body["error_code"])

	w, body = post(r, http.MethodPost, "/register", "", registerBody("tesoura", "ze@navalha.com"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email_already_used", body["error_code"])
}

func TestRegisterRejectsBadInput(t *testing.T) {
	r, h := newAuthRouter(t)

	req := registerBody("navalha", "ze@navalha.com")
	req["timezone"] = "Mars/Olympus"
	w, body := post(r, http.MethodPost, "/register", "", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_timezone", body["error_code"])

	req = registerBody("navalha", "ze@navalha.com")
	req["password"] = "123"
	w, body = post(r, http.MethodPost, "/register", "", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_payload", body["error_code"])

	h.EmailDomainOK = func(string) bool { return false }
	w, body = post(r, http.MethodPost, "/register", "", registerBody("navalha", "ze@naoexiste.invalid"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_email_domain", body["error_code"])
}

func TestUpdateBarbershop(t *testing.T) {
	r, _ := newAuthRouter(t)

	_, body := post(r, http.MethodPost, "/register", "", registerBody("navalha", "ze@navalha.com"))
	token := body["token"].(string)

	w, body := post(r, http.MethodPatch, "/me/barbershop", token, map[string]any{
		"address": "Rua A, 10", "timezone": "America/Manaus",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Rua A, 10", body["address"])
	assert.Equal(t, "America/Manaus", body["timezone"])
	assert.Equal(t, "Navalha de Ouro", body["name"])

	w, body = post(r, http.MethodPatch, "/me/barbershop", token, map[string]any{"timezone": "Nowhere/Void"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_timezone", body["error_code"])
}
