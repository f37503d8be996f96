package repositories

import (
	"context"
	"time"

	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// revokedTokenRepository implements RevokedTokenRepository interface
type revokedTokenRepository struct {
	db *gorm.DB
}

// NewRevokedTokenRepository creates a new revoked token repository
func NewRevokedTokenRepository(db *gorm.DB) RevokedTokenRepository {
	return &revokedTokenRepository{db: db}
}

// Create denylists a token hash
func (r *revokedTokenRepository) Create(ctx context.Context, token *models.RevokedToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// ExistsByTokenHash checks whether a token hash is denylisted.
// Expired rows are ignored; the token is already dead by then.
func (r *revokedTokenRepository) ExistsByTokenHash(ctx context.Context, tokenHash string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RevokedToken{}).
		Where("token_hash = ?", tokenHash).
		Where("expires_at > ?", time.Now()).
		Count(&count).Error
	return count > 0, err
}

// DeleteExpired deletes denylist rows past their expiry (cleanup job)
func (r *revokedTokenRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&models.RevokedToken{}).Error
}
