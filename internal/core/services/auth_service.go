package services

import (
	"context"
	"errors"
	"log"

	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/models"
	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/repositories"
	"github.com/TeemXTech/Grievance-sub002/internal/config"
	"github.com/TeemXTech/Grievance-sub002/internal/core/domain"
	"github.com/TeemXTech/Grievance-sub002/internal/pkg/jwt"
	"github.com/TeemXTech/Grievance-sub002/internal/pkg/password"

	"gorm.io/gorm"
)

// Auth errors, re-exported from the domain taxonomy
var (
	ErrInvalidCredentials = domain.ErrInvalidCredentials
	ErrAccountNotFound    = domain.ErrAccountNotFound
	ErrInvalidToken       = domain.ErrTokenInvalid
	ErrTokenExpired       = domain.ErrTokenExpired
)

// AuthService handles authentication business logic
type AuthService struct {
	accountRepo repositories.AccountRepository
	revokedRepo repositories.RevokedTokenRepository
	cfg         *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	accountRepo repositories.AccountRepository,
	revokedRepo repositories.RevokedTokenRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		revokedRepo: revokedRepo,
		cfg:         cfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Account     *models.AccountResponse `json:"user"`
	AccessToken string                  `json:"access_token"`
}

// Login verifies credentials and mints an identity token.
//
// Unknown email, wrong password, and inactive account all fail with the same
// ErrInvalidCredentials so the response cannot be used to enumerate accounts.
// A dummy bcrypt comparison runs on the unknown-email path to keep timing
// uniform.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	account, err := s.accountRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			password.VerifyDummy(input.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, account.Password) {
		return nil, ErrInvalidCredentials
	}

	if !account.IsActive {
		// Deliberately the same failure as bad credentials
		log.Printf("⚠️ Login rejected for deactivated account ID %d", account.ID)
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.Generate(
		account.ID,
		account.Email,
		account.Name,
		account.Role,
		s.cfg.JWT.Secret,
		s.cfg.JWT.ExpiryDays,
	)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Account logged in: %s [%s]", account.Email, account.Role)

	return &AuthResponse{
		Account:     account.ToResponse(),
		AccessToken: token,
	}, nil
}

// Logout denylists the presented token until its natural expiry.
//
// The token itself stays cryptographically valid; the authorization gate
// consults the denylist so a replayed cookie is rejected server-side.
// An unparseable token is simply dropped: there is nothing to revoke.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := jwt.Validate(token, s.cfg.JWT.Secret)
	if err != nil {
		return nil
	}

	revoked := &models.RevokedToken{
		AccountID: claims.AccountID,
		TokenHash: password.HashToken(token),
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if err := s.revokedRepo.Create(ctx, revoked); err != nil {
		return err
	}

	log.Printf("✅ Account logged out: ID %d", claims.AccountID)
	return nil
}

// IsRevoked reports whether a token has been denylisted
func (s *AuthService) IsRevoked(ctx context.Context, token string) (bool, error) {
	return s.revokedRepo.ExistsByTokenHash(ctx, password.HashToken(token))
}

// ValidateAccessToken validates an identity token
func (s *AuthService) ValidateAccessToken(token string) (*jwt.Claims, error) {
	claims, err := jwt.Validate(token, s.cfg.JWT.Secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GetAccountByID gets an account by ID
func (s *AuthService) GetAccountByID(ctx context.Context, id uint) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}
