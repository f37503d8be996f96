package services

import (
	"context"
	"testing"

	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/models"
	"github.com/TeemXTech/Grievance-sub002/internal/config"
	"github.com/TeemXTech/Grievance-sub002/internal/core/domain"
	"github.com/TeemXTech/Grievance-sub002/internal/pkg/jwt"
	"github.com/TeemXTech/Grievance-sub002/internal/pkg/password"
)

const authTestSecret = "auth-test-secret-at-least-32-chars!!"

func newAuthFixture(t *testing.T) (*AuthService, *fakeAccountRepo, *fakeRevokedRepo) {
	t.Helper()

	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: authTestSecret, ExpiryDays: 7},
	}
	accounts := newFakeAccountRepo()
	revoked := newFakeRevokedRepo()

	hash, err := password.Hash("admin123456")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	for _, a := range []*models.Account{
		{Email: "admin@example.com", Password: hash, Name: "Admin", Role: domain.RoleAdmin, IsActive: true},
		{Email: "citizen@example.com", Password: hash, Name: "Citizen", Role: domain.RoleCitizen, IsActive: true},
		{Email: "suspended@example.com", Password: hash, Name: "Suspended", Role: domain.RoleCitizen, IsActive: false},
	} {
		if err := accounts.Create(context.Background(), a); err != nil {
			t.Fatalf("failed to seed account: %v", err)
		}
	}

	return NewAuthService(accounts, revoked, cfg), accounts, revoked
}

func TestLoginSuccess(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	result, err := svc.Login(context.Background(), &LoginInput{
		Email:    "admin@example.com",
		Password: "admin123456",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.AccessToken == "" {
		t.Fatal("expected an access token")
	}
	if result.Account.Role != domain.RoleAdmin {
		t.Errorf("Role = %q, want ADMIN", result.Account.Role)
	}

	// The minted token must embed the role
	claims, err := jwt.Validate(result.AccessToken, authTestSecret)
	if err != nil {
		t.Fatalf("minted token failed validation: %v", err)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("token role = %q, want ADMIN", claims.Role)
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("token email = %q", claims.Email)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	// Unknown email, wrong password, and deactivated account must all
	// produce the exact same error so responses cannot be used to probe
	// which emails exist.
	cases := []LoginInput{
		{Email: "nobody@example.com", Password: "admin123456"},
		{Email: "admin@example.com", Password: "wrong-password"},
		{Email: "suspended@example.com", Password: "admin123456"},
	}
	for _, input := range cases {
		_, err := svc.Login(ctx, &input)
		if err != ErrInvalidCredentials {
			t.Errorf("Login(%s) error = %v, want ErrInvalidCredentials", input.Email, err)
		}
	}
}

func TestLogoutDenylistsToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, &LoginInput{Email: "citizen@example.com", Password: "admin123456"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := svc.Logout(ctx, result.AccessToken); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	// The token still verifies cryptographically; revocation is purely
	// server-side state consulted by the gate.
	if _, err := jwt.Validate(result.AccessToken, authTestSecret); err != nil {
		t.Errorf("token should still verify after logout, got %v", err)
	}

	revoked, err := svc.IsRevoked(ctx, result.AccessToken)
	if err != nil {
		t.Fatalf("IsRevoked failed: %v", err)
	}
	if !revoked {
		t.Error("expected token to be denylisted after logout")
	}
}

func TestLogoutUnparseableTokenIsNoop(t *testing.T) {
	svc, _, revoked := newAuthFixture(t)

	if err := svc.Logout(context.Background(), "garbage"); err != nil {
		t.Errorf("Logout of garbage token should be a no-op, got %v", err)
	}
	if len(revoked.tokens) != 0 {
		t.Error("no denylist row should be written for an unparseable token")
	}
}

func TestValidateAccessToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	result, err := svc.Login(context.Background(), &LoginInput{Email: "admin@example.com", Password: "admin123456"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	claims, err := svc.ValidateAccessToken(result.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	if claims.AccountID == 0 {
		t.Error("expected account ID in claims")
	}

	if _, err := svc.ValidateAccessToken("garbage"); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
