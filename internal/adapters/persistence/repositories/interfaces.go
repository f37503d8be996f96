package repositories

import (
	"context"
	"time"

	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/models"
)

// AccountRepository defines account repository interface
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.Account, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RevokedTokenRepository defines the token denylist interface.
// Rows live until the underlying token would have expired anyway.
type RevokedTokenRepository interface {
	Create(ctx context.Context, token *models.RevokedToken) error
	ExistsByTokenHash(ctx context.Context, tokenHash string) (bool, error)
	DeleteExpired(ctx context.Context) error
}

// GrievanceFilter narrows grievance listings
type GrievanceFilter struct {
	Status     string
	CategoryID uint
	District   string
	Priority   string
	AssignedTo uint
	CitizenID  uint
	Overdue    bool
}

// GrievanceRepository defines grievance repository interface
type GrievanceRepository interface {
	Create(ctx context.Context, grievance *models.Grievance) error
	GetByID(ctx context.Context, id uint) (*models.Grievance, error)
	GetByTrackingNo(ctx context.Context, trackingNo string) (*models.Grievance, error)
	Update(ctx context.Context, grievance *models.Grievance) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter *GrievanceFilter, offset, limit int) ([]*models.Grievance, int64, error)
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

// GrievanceUpdateRepository defines grievance history interface
type GrievanceUpdateRepository interface {
	Create(ctx context.Context, update *models.GrievanceUpdate) error
	ListByGrievance(ctx context.Context, grievanceID uint) ([]*models.GrievanceUpdate, error)
}

// CategoryRepository defines category master repository interface
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint) error
}

// DistrictRepository defines district master repository interface
type DistrictRepository interface {
	Create(ctx context.Context, district *models.District) error
	GetByID(ctx context.Context, id uint) (*models.District, error)
	List(ctx context.Context) ([]*models.District, error)
	Update(ctx context.Context, district *models.District) error
	Delete(ctx context.Context, id uint) error
}

// EventRepository defines calendar event repository interface
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id uint) (*models.Event, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uint) error
}
