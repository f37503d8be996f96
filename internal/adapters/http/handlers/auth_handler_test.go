package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TeemXTech/Grievance-sub002/internal/adapters/http/middleware"
	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/models"
	"github.com/TeemXTech/Grievance-sub002/internal/config"
	"github.com/TeemXTech/Grievance-sub002/internal/core/domain"
	"github.com/TeemXTech/Grievance-sub002/internal/core/services"
	"github.com/TeemXTech/Grievance-sub002/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const handlerTestSecret = "handler-test-secret-at-least-32chars"

type stubAccountRepo struct {
	accounts map[uint]*models.Account
}

func (s *stubAccountRepo) Create(ctx context.Context, a *models.Account) error {
	a.ID = uint(len(s.accounts) + 1)
	s.accounts[a.ID] = a
	return nil
}

func (s *stubAccountRepo) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	a, ok := s.accounts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (s *stubAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	for _, a := range s.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAccountRepo) Update(ctx context.Context, a *models.Account) error {
	s.accounts[a.ID] = a
	return nil
}

func (s *stubAccountRepo) Delete(ctx context.Context, id uint) error {
	delete(s.accounts, id)
	return nil
}

func (s *stubAccountRepo) List(ctx context.Context, offset, limit int) ([]*models.Account, int64, error) {
	var out []*models.Account
	for _, a := range s.accounts {
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (s *stubAccountRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(ctx, email)
	return err == nil, nil
}

type stubRevokedRepo struct {
	hashes map[string]bool
}

func (s *stubRevokedRepo) Create(ctx context.Context, t *models.RevokedToken) error {
	s.hashes[t.TokenHash] = true
	return nil
}

func (s *stubRevokedRepo) ExistsByTokenHash(ctx context.Context, hash string) (bool, error) {
	return s.hashes[hash], nil
}

func (s *stubRevokedRepo) DeleteExpired(ctx context.Context) error {
	return nil
}

func newAuthTestApp(t *testing.T) (*fiber.App, *stubRevokedRepo) {
	t.Helper()

	cfg := &config.Config{
		JWT:    config.JWTConfig{Secret: handlerTestSecret, ExpiryDays: 7},
		Cookie: config.CookieConfig{Secure: false, SameSite: "Strict"},
	}

	hash, err := password.Hash("admin123456")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}
	accounts := &stubAccountRepo{accounts: map[uint]*models.Account{
		1: {ID: 1, Email: "admin@example.com", Password: hash, Name: "Admin", Role: domain.RoleAdmin, IsActive: true},
	}}
	revoked := &stubRevokedRepo{hashes: map[string]bool{}}

	authService := services.NewAuthService(accounts, revoked, cfg)
	userService := services.NewUserService(accounts)
	handler := NewAuthHandler(authService, userService, cfg)

	app := fiber.New()
	app.Use(middleware.Gate(cfg, middleware.DefaultRouteMatrix(), accounts, revoked))
	app.Post("/api/v1/auth/login", handler.Login)
	app.Post("/api/v1/auth/logout", handler.Logout)
	app.Get("/api/v1/auth/me", handler.Me)

	return app, revoked
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return body
}

func TestLoginEndpointSuccess(t *testing.T) {
	app, _ := newAuthTestApp(t)

	resp := postJSON(t, app, "/api/v1/auth/login", map[string]string{
		"email":    "admin@example.com",
		"password": "admin123456",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	// The token rides both the body and an HttpOnly cookie
	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == middleware.AccessTokenCookie {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected access_token cookie to be set")
	}
	if !cookie.HttpOnly {
		t.Error("access token cookie must be HttpOnly")
	}

	body := decodeBody(t, resp)
	data, _ := body["data"].(map[string]interface{})
	if data["access_token"] == "" || data["access_token"] == nil {
		t.Error("expected access_token in response body")
	}
	user, _ := data["user"].(map[string]interface{})
	if user["role"] != "ADMIN" {
		t.Errorf("user role = %v, want ADMIN", user["role"])
	}
}

func TestLoginEndpointWrongPassword(t *testing.T) {
	app, _ := newAuthTestApp(t)

	resp := postJSON(t, app, "/api/v1/auth/login", map[string]string{
		"email":    "admin@example.com",
		"password": "not-the-password",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["success"] != false {
		t.Error("expected success=false")
	}
}

func TestLoginEndpointUnknownEmailSameShape(t *testing.T) {
	app, _ := newAuthTestApp(t)

	wrongPass := postJSON(t, app, "/api/v1/auth/login", map[string]string{
		"email": "admin@example.com", "password": "bad",
	})
	unknown := postJSON(t, app, "/api/v1/auth/login", map[string]string{
		"email": "ghost@example.com", "password": "bad",
	})

	if wrongPass.StatusCode != unknown.StatusCode {
		t.Errorf("status mismatch: %d vs %d", wrongPass.StatusCode, unknown.StatusCode)
	}
	// Identical error text so the response cannot reveal which emails exist
	b1 := decodeBody(t, wrongPass)
	b2 := decodeBody(t, unknown)
	if b1["error"] != b2["error"] {
		t.Errorf("error text differs: %v vs %v", b1["error"], b2["error"])
	}
	if b1["error"] != "Invalid credentials" {
		t.Errorf("error = %v, want %q", b1["error"], "Invalid credentials")
	}
}

func TestLoginEndpointMissingFields(t *testing.T) {
	app, _ := newAuthTestApp(t)

	resp := postJSON(t, app, "/api/v1/auth/login", map[string]string{"email": "admin@example.com"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing password status = %d, want 400", resp.StatusCode)
	}
}

func TestLogoutEndpointRevokesToken(t *testing.T) {
	app, revoked := newAuthTestApp(t)

	login := postJSON(t, app, "/api/v1/auth/login", map[string]string{
		"email": "admin@example.com", "password": "admin123456",
	})
	data, _ := decodeBody(t, login)["data"].(map[string]interface{})
	token, _ := data["access_token"].(string)
	if token == "" {
		t.Fatal("no token from login")
	}

	// Token works before logout
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/auth/me before logout: status = %d, want 200", resp.StatusCode)
	}

	// Logout with the bearer token
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout status = %d, want 200", resp.StatusCode)
	}
	if len(revoked.hashes) != 1 {
		t.Fatalf("expected 1 denylist row, got %d", len(revoked.hashes))
	}

	// Same token is now rejected by the gate
	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("/auth/me after logout: status = %d, want 401", resp.StatusCode)
	}
}
