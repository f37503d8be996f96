package repositories

import (
	"context"
	"time"

	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// grievanceRepository implements GrievanceRepository interface
type grievanceRepository struct {
	db *gorm.DB
}

// NewGrievanceRepository creates a new grievance repository
func NewGrievanceRepository(db *gorm.DB) GrievanceRepository {
	return &grievanceRepository{db: db}
}

// Create creates a new grievance
func (r *grievanceRepository) Create(ctx context.Context, grievance *models.Grievance) error {
	return r.db.WithContext(ctx).Create(grievance).Error
}

// GetByID gets a grievance by ID with relations preloaded
func (r *grievanceRepository) GetByID(ctx context.Context, id uint) (*models.Grievance, error) {
	var grievance models.Grievance
	err := r.db.WithContext(ctx).
		Preload("Citizen").
		Preload("Category").
		Preload("Assignee").
		Where("id = ?", id).
		First(&grievance).Error
	if err != nil {
		return nil, err
	}
	return &grievance, nil
}

// GetByTrackingNo gets a grievance by its public tracking number
func (r *grievanceRepository) GetByTrackingNo(ctx context.Context, trackingNo string) (*models.Grievance, error) {
	var grievance models.Grievance
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Assignee").
		Where("tracking_no = ?", trackingNo).
		First(&grievance).Error
	if err != nil {
		return nil, err
	}
	return &grievance, nil
}

// Update updates a grievance
func (r *grievanceRepository) Update(ctx context.Context, grievance *models.Grievance) error {
	return r.db.WithContext(ctx).Save(grievance).Error
}

// Delete soft deletes a grievance
func (r *grievanceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Grievance{}, id).Error
}

// List lists grievances matching the filter, newest first
func (r *grievanceRepository) List(ctx context.Context, filter *GrievanceFilter, offset, limit int) ([]*models.Grievance, int64, error) {
	var grievances []*models.Grievance
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Grievance{})
	query = applyGrievanceFilter(query, filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Citizen").
		Preload("Category").
		Preload("Assignee").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&grievances).Error
	if err != nil {
		return nil, 0, err
	}

	return grievances, total, nil
}

// MarkOverdue flags open grievances past their due date.
// Returns the number of rows newly flagged.
func (r *grievanceRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Grievance{}).
		Where("is_overdue = ?", false).
		Where("due_date IS NOT NULL AND due_date < ?", now).
		Where("status NOT IN ?", []string{models.StatusResolved, models.StatusClosed, models.StatusRejected}).
		Update("is_overdue", true)
	return result.RowsAffected, result.Error
}

func applyGrievanceFilter(query *gorm.DB, filter *GrievanceFilter) *gorm.DB {
	if filter == nil {
		return query
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.District != "" {
		query = query.Where("district = ?", filter.District)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.AssignedTo != 0 {
		query = query.Where("assigned_to = ?", filter.AssignedTo)
	}
	if filter.CitizenID != 0 {
		query = query.Where("citizen_id = ?", filter.CitizenID)
	}
	if filter.Overdue {
		query = query.Where("is_overdue = ?", true)
	}
	return query
}

// grievanceUpdateRepository implements GrievanceUpdateRepository interface
type grievanceUpdateRepository struct {
	db *gorm.DB
}

// NewGrievanceUpdateRepository creates a new grievance update repository
func NewGrievanceUpdateRepository(db *gorm.DB) GrievanceUpdateRepository {
	return &grievanceUpdateRepository{db: db}
}

// Create appends a history row
func (r *grievanceUpdateRepository) Create(ctx context.Context, update *models.GrievanceUpdate) error {
	return r.db.WithContext(ctx).Create(update).Error
}

// ListByGrievance lists history rows for a grievance, oldest first
func (r *grievanceUpdateRepository) ListByGrievance(ctx context.Context, grievanceID uint) ([]*models.GrievanceUpdate, error) {
	var updates []*models.GrievanceUpdate
	err := r.db.WithContext(ctx).
		Preload("Performer").
		Where("grievance_id = ?", grievanceID).
		Order("created_at ASC").
		Find(&updates).Error
	if err != nil {
		return nil, err
	}
	return updates, nil
}
