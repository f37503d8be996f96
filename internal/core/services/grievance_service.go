package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/models"
	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/repositories"
	"github.com/TeemXTech/Grievance-sub002/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Grievance service errors. Shared sentinels are re-exported from the
// domain taxonomy.
var (
	ErrGrievanceNotFound  = domain.ErrGrievanceNotFound
	ErrCategoryNotFound   = errors.New("category not found")
	ErrInvalidTransition  = domain.ErrInvalidTransition
	ErrNotGrievanceOwner  = domain.ErrNotGrievanceOwner
	ErrAssigneeNotOfficer = domain.ErrAssigneeNotOfficer
	ErrRoleNotAllowed     = domain.ErrRoleNotAllowed
)

// validTransitions is the grievance status machine. A transition absent from
// this table is rejected regardless of who requests it.
var validTransitions = map[string][]string{
	models.StatusNew:        {models.StatusInReview, models.StatusRejected},
	models.StatusInReview:   {models.StatusAssigned, models.StatusRejected},
	models.StatusAssigned:   {models.StatusInProgress},
	models.StatusInProgress: {models.StatusResolved},
	models.StatusResolved:   {models.StatusClosed, models.StatusReopened},
	models.StatusClosed:     {models.StatusReopened},
	models.StatusReopened:   {models.StatusInReview},
}

// GrievanceService handles grievance business logic
type GrievanceService struct {
	grievanceRepo repositories.GrievanceRepository
	updateRepo    repositories.GrievanceUpdateRepository
	categoryRepo  repositories.CategoryRepository
	accountRepo   repositories.AccountRepository
}

// NewGrievanceService creates a new grievance service
func NewGrievanceService(
	grievanceRepo repositories.GrievanceRepository,
	updateRepo repositories.GrievanceUpdateRepository,
	categoryRepo repositories.CategoryRepository,
	accountRepo repositories.AccountRepository,
) *GrievanceService {
	return &GrievanceService{
		grievanceRepo: grievanceRepo,
		updateRepo:    updateRepo,
		categoryRepo:  categoryRepo,
		accountRepo:   accountRepo,
	}
}

// SubmitInput represents grievance submission input
type SubmitInput struct {
	Subject     string `json:"subject" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	CategoryID  uint   `json:"category_id" validate:"required"`
	District    string `json:"district,omitempty"`
	Location    string `json:"location,omitempty"`
}

// ListInput represents grievance listing input
type ListInput struct {
	Filter *repositories.GrievanceFilter
	Page   int
	Limit  int
}

// ListOutput represents grievance listing output
type ListOutput struct {
	Grievances []*models.GrievanceResponse `json:"grievances"`
	Total      int64                       `json:"total"`
	Page       int                         `json:"page"`
	Limit      int                         `json:"limit"`
}

// Submit files a new grievance for a citizen.
// Due date is derived from the category SLA at submission time.
func (s *GrievanceService) Submit(ctx context.Context, citizenID uint, input *SubmitInput, ip string) (*models.Grievance, error) {
	category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, ErrCategoryNotFound
	}

	due := time.Now().AddDate(0, 0, category.SLADays)
	grievance := &models.Grievance{
		TrackingNo:  newTrackingNo(),
		CitizenID:   citizenID,
		Subject:     strings.TrimSpace(input.Subject),
		Description: input.Description,
		CategoryID:  category.ID,
		District:    strings.TrimSpace(input.District),
		Location:    strings.TrimSpace(input.Location),
		Status:      models.StatusNew,
		Priority:    models.PriorityNormal,
		DueDate:     &due,
	}

	if err := s.grievanceRepo.Create(ctx, grievance); err != nil {
		return nil, err
	}

	s.record(ctx, grievance.ID, models.ActionSubmit, "", models.StatusNew, "Grievance submitted", citizenID, ip)

	log.Printf("✅ Grievance %s submitted by citizen %d", grievance.TrackingNo, citizenID)
	return grievance, nil
}

// List lists grievances matching the filter
func (s *GrievanceService) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	offset := (input.Page - 1) * input.Limit
	grievances, total, err := s.grievanceRepo.List(ctx, input.Filter, offset, input.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.GrievanceResponse, len(grievances))
	for i, grievance := range grievances {
		responses[i] = grievance.ToResponse()
	}

	return &ListOutput{
		Grievances: responses,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
	}, nil
}

// Get fetches one grievance. Citizens can only read their own.
func (s *GrievanceService) Get(ctx context.Context, id uint, callerID uint, callerRole domain.Role) (*models.Grievance, error) {
	grievance, err := s.grievanceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGrievanceNotFound
		}
		return nil, err
	}

	if callerRole == domain.RoleCitizen && grievance.CitizenID != callerID {
		return nil, ErrNotGrievanceOwner
	}

	return grievance, nil
}

// Track fetches a grievance by tracking number (citizen-facing status check)
func (s *GrievanceService) Track(ctx context.Context, trackingNo string) (*models.Grievance, error) {
	grievance, err := s.grievanceRepo.GetByTrackingNo(ctx, trackingNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGrievanceNotFound
		}
		return nil, err
	}
	return grievance, nil
}

// History lists the audit trail for one grievance
func (s *GrievanceService) History(ctx context.Context, id uint, callerID uint, callerRole domain.Role) ([]*models.GrievanceUpdate, error) {
	if _, err := s.Get(ctx, id, callerID, callerRole); err != nil {
		return nil, err
	}
	return s.updateRepo.ListByGrievance(ctx, id)
}

// requireRole rejects callers whose role is not in the allowed set. The
// transition table constrains ordering; this constrains the actor.
func requireRole(role domain.Role, allowed ...domain.Role) error {
	for _, a := range allowed {
		if role == a {
			return nil
		}
	}
	return ErrRoleNotAllowed
}

// Triage moves a NEW or REOPENED grievance into review, optionally adjusting
// its priority. Back office and admin only.
func (s *GrievanceService) Triage(ctx context.Context, id uint, officerID uint, officerRole domain.Role, priority, note, ip string) (*models.Grievance, error) {
	if err := requireRole(officerRole, domain.RoleAdmin, domain.RoleBackOfficer); err != nil {
		return nil, err
	}

	grievance, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	from := grievance.Status
	if err := s.transition(grievance, models.StatusInReview); err != nil {
		return nil, err
	}
	if priority != "" {
		grievance.Priority = priority
	}
	grievance.TriagedBy = &officerID

	if err := s.grievanceRepo.Update(ctx, grievance); err != nil {
		return nil, err
	}

	s.record(ctx, grievance.ID, models.ActionTriage, from, models.StatusInReview, note, officerID, ip)
	return grievance, nil
}

// Assign hands a grievance in review to a field officer. Back office and
// admin only.
func (s *GrievanceService) Assign(ctx context.Context, id, officerID uint, officerRole domain.Role, assigneeID uint, note, ip string) (*models.Grievance, error) {
	if err := requireRole(officerRole, domain.RoleAdmin, domain.RoleBackOfficer); err != nil {
		return nil, err
	}

	grievance, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	assignee, err := s.accountRepo.GetByID(ctx, assigneeID)
	if err != nil || assignee.Role != domain.RoleFieldOfficer {
		return nil, ErrAssigneeNotOfficer
	}

	if err := s.transition(grievance, models.StatusAssigned); err != nil {
		return nil, err
	}
	grievance.AssignedTo = &assigneeID

	if err := s.grievanceRepo.Update(ctx, grievance); err != nil {
		return nil, err
	}

	s.record(ctx, grievance.ID, models.ActionAssign, models.StatusInReview, models.StatusAssigned,
		fmt.Sprintf("Assigned to %s. %s", assignee.Name, note), officerID, ip)
	return grievance, nil
}

// Progress marks an assigned grievance as being worked on. Field officer
// and admin only.
func (s *GrievanceService) Progress(ctx context.Context, id, officerID uint, officerRole domain.Role, note, ip string) (*models.Grievance, error) {
	if err := requireRole(officerRole, domain.RoleAdmin, domain.RoleFieldOfficer); err != nil {
		return nil, err
	}
	return s.step(ctx, id, officerID, models.StatusInProgress, models.ActionProgress, note, ip)
}

// Resolve records the resolution of an in-progress grievance. Field officer
// and admin only.
func (s *GrievanceService) Resolve(ctx context.Context, id, officerID uint, officerRole domain.Role, resolutionNote, ip string) (*models.Grievance, error) {
	if err := requireRole(officerRole, domain.RoleAdmin, domain.RoleFieldOfficer); err != nil {
		return nil, err
	}

	grievance, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.transition(grievance, models.StatusResolved); err != nil {
		return nil, err
	}
	now := time.Now()
	grievance.ResolvedAt = &now
	grievance.ResolutionNote = resolutionNote
	grievance.IsOverdue = false

	if err := s.grievanceRepo.Update(ctx, grievance); err != nil {
		return nil, err
	}

	s.record(ctx, grievance.ID, models.ActionResolve, models.StatusInProgress, models.StatusResolved, resolutionNote, officerID, ip)
	return grievance, nil
}

// Close closes a resolved grievance. Admin only.
func (s *GrievanceService) Close(ctx context.Context, id, officerID uint, officerRole domain.Role, note, ip string) (*models.Grievance, error) {
	if err := requireRole(officerRole, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.step(ctx, id, officerID, models.StatusClosed, models.ActionClose, note, ip)
}

// Reject rejects a grievance before assignment. Back office and admin only.
func (s *GrievanceService) Reject(ctx context.Context, id, officerID uint, officerRole domain.Role, note, ip string) (*models.Grievance, error) {
	if err := requireRole(officerRole, domain.RoleAdmin, domain.RoleBackOfficer); err != nil {
		return nil, err
	}
	return s.step(ctx, id, officerID, models.StatusRejected, models.ActionReject, note, ip)
}

// Reopen lets the owning citizen contest a resolved or closed grievance
func (s *GrievanceService) Reopen(ctx context.Context, id, citizenID uint, note, ip string) (*models.Grievance, error) {
	grievance, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if grievance.CitizenID != citizenID {
		return nil, ErrNotGrievanceOwner
	}

	from := grievance.Status
	if err := s.transition(grievance, models.StatusReopened); err != nil {
		return nil, err
	}
	grievance.IsOverdue = false

	if err := s.grievanceRepo.Update(ctx, grievance); err != nil {
		return nil, err
	}

	s.record(ctx, grievance.ID, models.ActionReopen, from, models.StatusReopened, note, citizenID, ip)
	return grievance, nil
}

// Delete soft deletes a grievance. Admin only.
func (s *GrievanceService) Delete(ctx context.Context, id, adminID uint, adminRole domain.Role) error {
	if err := requireRole(adminRole, domain.RoleAdmin); err != nil {
		return err
	}
	if _, err := s.fetch(ctx, id); err != nil {
		return err
	}
	if err := s.grievanceRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("✅ Grievance %d deleted by admin %d", id, adminID)
	return nil
}

// MarkOverdue flags open grievances past their due date (cron job)
func (s *GrievanceService) MarkOverdue(ctx context.Context) (int64, error) {
	return s.grievanceRepo.MarkOverdue(ctx, time.Now())
}

// step performs a generic single-status transition with a history row
func (s *GrievanceService) step(ctx context.Context, id, actorID uint, toStatus, action, note, ip string) (*models.Grievance, error) {
	grievance, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	from := grievance.Status
	if err := s.transition(grievance, toStatus); err != nil {
		return nil, err
	}

	if err := s.grievanceRepo.Update(ctx, grievance); err != nil {
		return nil, err
	}

	s.record(ctx, grievance.ID, action, from, toStatus, note, actorID, ip)
	return grievance, nil
}

func (s *GrievanceService) fetch(ctx context.Context, id uint) (*models.Grievance, error) {
	grievance, err := s.grievanceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGrievanceNotFound
		}
		return nil, err
	}
	return grievance, nil
}

// transition mutates the status if the move is allowed by the table
func (s *GrievanceService) transition(grievance *models.Grievance, toStatus string) error {
	for _, allowed := range validTransitions[grievance.Status] {
		if allowed == toStatus {
			grievance.Status = toStatus
			return nil
		}
	}
	return ErrInvalidTransition
}

// record appends a history row; failures are logged rather than surfaced
// because the primary write already succeeded
func (s *GrievanceService) record(ctx context.Context, grievanceID uint, action, from, to, note string, actorID uint, ip string) {
	update := &models.GrievanceUpdate{
		GrievanceID: grievanceID,
		Action:      action,
		FromStatus:  from,
		ToStatus:    to,
		Note:        note,
		PerformedBy: actorID,
		IPAddress:   ip,
	}
	if err := s.updateRepo.Create(ctx, update); err != nil {
		log.Printf("⚠️ Failed to record grievance %d history: %v", grievanceID, err)
	}
}

// newTrackingNo builds a citizen-facing tracking number
func newTrackingNo() string {
	return "GRV-" + strings.ToUpper(uuid.New().String()[:8])
}
