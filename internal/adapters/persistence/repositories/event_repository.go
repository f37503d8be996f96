package repositories

import (
	"context"
	"time"

	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// eventRepository implements EventRepository interface
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// Create creates a new event
func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// GetByID gets an event by ID
func (r *eventRepository) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).Preload("Creator").Where("id = ?", id).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// ListBetween lists events overlapping the [from, to) window
func (r *eventRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*models.Event, error) {
	var events []*models.Event
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Where("starts_at < ? AND ends_at >= ?", to, from).
		Order("starts_at").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Update updates an event
func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// Delete soft deletes an event
func (r *eventRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Event{}, id).Error
}
