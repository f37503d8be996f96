package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/models"
	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/repositories"
	"github.com/TeemXTech/Grievance-sub002/internal/core/domain"
	"github.com/TeemXTech/Grievance-sub002/internal/pkg/password"

	"gorm.io/gorm"
)

// User service errors
var (
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrOldPasswordWrong    = errors.New("old password is incorrect")
	ErrCannotDeleteSelf    = errors.New("cannot delete your own account")
	ErrCannotChangeOwnRole = errors.New("cannot change your own role")
	ErrInvalidRole         = errors.New("invalid role")
	ErrWeakPassword        = errors.New("password must be at least 8 characters")
)

// UserService handles account management business logic
type UserService struct {
	accountRepo repositories.AccountRepository
}

// NewUserService creates a new user service
func NewUserService(accountRepo repositories.AccountRepository) *UserService {
	return &UserService{accountRepo: accountRepo}
}

// RegisterInput represents citizen self-registration input
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone,omitempty"`
	District string `json:"district,omitempty"`
}

// CreateAccountInput represents admin account creation input
type CreateAccountInput struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8"`
	Name     string      `json:"name" validate:"required"`
	Role     domain.Role `json:"role" validate:"required"`
}

// UpdateAccountInput represents admin account update input
type UpdateAccountInput struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// ListAccountsOutput represents list accounts output
type ListAccountsOutput struct {
	Accounts   []*models.AccountResponse `json:"accounts"`
	Total      int64                     `json:"total"`
	Page       int                       `json:"page"`
	Limit      int                       `json:"limit"`
	TotalPages int                       `json:"total_pages"`
}

// ChangePasswordInput represents change password input
type ChangePasswordInput struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Register creates a citizen account (public self-registration)
func (s *UserService) Register(ctx context.Context, input *RegisterInput) (*models.Account, error) {
	if !password.ValidatePassword(input.Password) {
		return nil, ErrWeakPassword
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	exists, err := s.accountRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		Email:    email,
		Password: hashed,
		Name:     strings.TrimSpace(input.Name),
		Phone:    strings.TrimSpace(input.Phone),
		District: strings.TrimSpace(input.District),
		Role:     domain.RoleCitizen,
		IsActive: true,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	log.Printf("✅ Citizen registered: %s", account.Email)
	return account, nil
}

// CreateAccount creates a staff account (admin only)
func (s *UserService) CreateAccount(ctx context.Context, input *CreateAccountInput) (*models.Account, error) {
	if !input.Role.IsValid() {
		return nil, ErrInvalidRole
	}
	if !password.ValidatePassword(input.Password) {
		return nil, ErrWeakPassword
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	exists, err := s.accountRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		Email:    email,
		Password: hashed,
		Name:     strings.TrimSpace(input.Name),
		Role:     input.Role,
		IsActive: true,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	log.Printf("✅ Account created: %s [%s]", account.Email, account.Role)
	return account, nil
}

// ListAccounts lists all accounts with pagination
func (s *UserService) ListAccounts(ctx context.Context, page, limit int) (*ListAccountsOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	offset := (page - 1) * limit
	accounts, total, err := s.accountRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.AccountResponse, len(accounts))
	for i, account := range accounts {
		responses[i] = account.ToResponse()
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	return &ListAccountsOutput{
		Accounts:   responses,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// GetAccount gets a single account
func (s *UserService) GetAccount(ctx context.Context, id uint) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// UpdateAccount updates name, role, or active status (admin only).
//
// A role change only takes effect when the account next logs in: the gate
// reads the role embedded in the token, not the live record. Deactivation,
// by contrast, takes effect on the account's very next request because the
// gate re-checks active status per request.
func (s *UserService) UpdateAccount(ctx context.Context, actorID, targetID uint, input *UpdateAccountInput) (*models.Account, error) {
	account, err := s.GetAccount(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		account.Name = strings.TrimSpace(*input.Name)
	}

	if input.Role != nil {
		if actorID == targetID {
			return nil, ErrCannotChangeOwnRole
		}
		role, ok := domain.ParseRole(*input.Role)
		if !ok {
			return nil, ErrInvalidRole
		}
		account.Role = role
	}

	if input.IsActive != nil {
		account.IsActive = *input.IsActive
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	log.Printf("✅ Account %d updated by admin %d", targetID, actorID)
	return account, nil
}

// DeleteAccount soft deletes an account (admin only)
func (s *UserService) DeleteAccount(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return ErrCannotDeleteSelf
	}

	if _, err := s.GetAccount(ctx, targetID); err != nil {
		return err
	}

	if err := s.accountRepo.Delete(ctx, targetID); err != nil {
		return err
	}

	log.Printf("✅ Account %d deleted by admin %d", targetID, actorID)
	return nil
}

// ChangePassword changes the caller's own password
func (s *UserService) ChangePassword(ctx context.Context, accountID uint, input *ChangePasswordInput) error {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}

	if !password.Verify(input.OldPassword, account.Password) {
		return ErrOldPasswordWrong
	}
	if !password.ValidatePassword(input.NewPassword) {
		return ErrWeakPassword
	}

	hashed, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	account.Password = hashed
	return s.accountRepo.Update(ctx, account)
}
