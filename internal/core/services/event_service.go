package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/models"
	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Event service errors
var (
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidWindow = errors.New("event must end after it starts")
)

// EventService handles the minister's office calendar
type EventService struct {
	eventRepo repositories.EventRepository
}

// NewEventService creates a new event service
func NewEventService(eventRepo repositories.EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

// EventInput represents create/update event input
type EventInput struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	EndsAt      time.Time `json:"ends_at" validate:"required"`
}

// Create creates a calendar event
func (s *EventService) Create(ctx context.Context, creatorID uint, input *EventInput) (*models.Event, error) {
	if !input.EndsAt.After(input.StartsAt) {
		return nil, ErrInvalidWindow
	}

	event := &models.Event{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Location:    strings.TrimSpace(input.Location),
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		CreatedBy:   creatorID,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Get fetches one event
func (s *EventService) Get(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// ListWindow lists events overlapping the given window.
// A zero window defaults to the coming 30 days.
func (s *EventService) ListWindow(ctx context.Context, from, to time.Time) ([]*models.Event, error) {
	if from.IsZero() {
		from = time.Now()
	}
	if to.IsZero() || !to.After(from) {
		to = from.AddDate(0, 0, 30)
	}
	return s.eventRepo.ListBetween(ctx, from, to)
}

// Update updates an event
func (s *EventService) Update(ctx context.Context, id uint, input *EventInput) (*models.Event, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !input.EndsAt.After(input.StartsAt) {
		return nil, ErrInvalidWindow
	}

	event.Title = strings.TrimSpace(input.Title)
	event.Description = input.Description
	event.Location = strings.TrimSpace(input.Location)
	event.StartsAt = input.StartsAt
	event.EndsAt = input.EndsAt

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete soft deletes an event
func (s *EventService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.eventRepo.Delete(ctx, id)
}
