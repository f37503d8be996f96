package handlers

import (
	"errors"
	"strings"

	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/repositories"
	"github.com/TeemXTech/Grievance-sub002/internal/core/domain"
	"github.com/TeemXTech/Grievance-sub002/internal/core/services"
	"github.com/TeemXTech/Grievance-sub002/internal/pkg/pagination"
	"github.com/TeemXTech/Grievance-sub002/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// GrievanceHandler handles grievance lifecycle endpoints
type GrievanceHandler struct {
	grievanceService *services.GrievanceService
}

// NewGrievanceHandler creates a new grievance handler
func NewGrievanceHandler(grievanceService *services.GrievanceService) *GrievanceHandler {
	return &GrievanceHandler{grievanceService: grievanceService}
}

// SubmitGrievanceRequest represents grievance submission request body
type SubmitGrievanceRequest struct {
	Subject     string `json:"subject"`
	Description string `json:"description"`
	CategoryID  uint   `json:"category_id"`
	District    string `json:"district"`
	Location    string `json:"location"`
}

// StepRequest represents a lifecycle step request body
type StepRequest struct {
	Note     string `json:"note"`
	Priority string `json:"priority,omitempty"`
}

// AssignRequest represents an assignment request body
type AssignRequest struct {
	AssigneeID uint   `json:"assignee_id"`
	Note       string `json:"note"`
}

// ResolveRequest represents a resolution request body
type ResolveRequest struct {
	ResolutionNote string `json:"resolution_note"`
}

func callerIdentity(c *fiber.Ctx) (uint, domain.Role, bool) {
	id, ok := c.Locals("accountID").(uint)
	if !ok {
		return 0, "", false
	}
	role, ok := c.Locals("role").(domain.Role)
	if !ok {
		return 0, "", false
	}
	return id, role, true
}

// grievanceError maps service errors to HTTP responses
func grievanceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrGrievanceNotFound):
		return response.NotFound(c, "Grievance not found")
	case errors.Is(err, services.ErrCategoryNotFound):
		return response.BadRequest(c, "Unknown category")
	case errors.Is(err, services.ErrNotGrievanceOwner):
		return response.Forbidden(c, "Grievance belongs to another citizen")
	case errors.Is(err, services.ErrInvalidTransition):
		return response.Conflict(c, "Invalid status transition")
	case errors.Is(err, services.ErrAssigneeNotOfficer):
		return response.BadRequest(c, "Assignee must be a field officer")
	case errors.Is(err, services.ErrRoleNotAllowed):
		return response.Forbidden(c, "Not permitted for your role")
	default:
		return response.InternalServerError(c, fallback)
	}
}

// Submit files a new grievance
// @Summary Submit grievance
// @Description File a new grievance; returns a tracking number
// @Tags Grievances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubmitGrievanceRequest true "Grievance data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /grievances [post]
func (h *GrievanceHandler) Submit(c *fiber.Ctx) error {
	callerID, _, ok := callerIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req SubmitGrievanceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if strings.TrimSpace(req.Subject) == "" {
		return response.BadRequest(c, "Subject is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return response.BadRequest(c, "Description is required")
	}
	if req.CategoryID == 0 {
		return response.BadRequest(c, "Category is required")
	}

	input := &services.SubmitInput{
		Subject:     strings.TrimSpace(req.Subject),
		Description: req.Description,
		CategoryID:  req.CategoryID,
		District:    strings.TrimSpace(req.District),
		Location:    strings.TrimSpace(req.Location),
	}

	grievance, err := h.grievanceService.Submit(c.Context(), callerID, input, c.IP())
	if err != nil {
		return grievanceError(c, err, "Failed to submit grievance")
	}

	return response.Created(c, "Grievance submitted successfully", grievance.ToResponse())
}

// List returns grievances, scoped by role
// @Summary List grievances
// @Description List grievances; citizens see only their own, field officers their assignments
// @Tags Grievances
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "Status filter"
// @Param category_id query int false "Category filter"
// @Param district query string false "District filter"
// @Param priority query string false "Priority filter"
// @Param overdue query bool false "Only overdue"
// @Success 200 {object} response.Response
// @Router /grievances [get]
func (h *GrievanceHandler) List(c *fiber.Ctx) error {
	callerID, role, ok := callerIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	filter := &repositories.GrievanceFilter{
		Status:   c.Query("status"),
		District: c.Query("district"),
		Priority: c.Query("priority"),
	}
	if categoryID := c.QueryInt("category_id", 0); categoryID > 0 {
		filter.CategoryID = uint(categoryID)
	}
	if c.QueryBool("overdue", false) {
		filter.Overdue = true
	}

	// Citizens only ever see their own grievances; field officers
	// default to their own queue.
	switch role {
	case domain.RoleCitizen:
		filter.CitizenID = callerID
	case domain.RoleFieldOfficer:
		filter.AssignedTo = callerID
	}

	params := pagination.GetParams(c)
	result, err := h.grievanceService.List(c.Context(), &services.ListInput{
		Filter: filter,
		Page:   params.Page,
		Limit:  params.Limit,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to list grievances")
	}

	return response.Success(c, "Grievances retrieved successfully", result)
}

// Get returns one grievance
// @Summary Get grievance
// @Description Get a grievance by ID
// @Tags Grievances
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grievance ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /grievances/{id} [get]
func (h *GrievanceHandler) Get(c *fiber.Ctx) error {
	callerID, role, ok := callerIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid grievance ID")
	}

	grievance, err := h.grievanceService.Get(c.Context(), id, callerID, role)
	if err != nil {
		return grievanceError(c, err, "Failed to get grievance")
	}

	return response.Success(c, "Grievance retrieved successfully", grievance.ToResponse())
}

// Track returns the public status of a grievance by tracking number
// @Summary Track grievance
// @Description Look up a grievance by tracking number, no login required
// @Tags Grievances
// @Produce json
// @Param tracking_no path string true "Tracking number"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /grievances/track/{tracking_no} [get]
func (h *GrievanceHandler) Track(c *fiber.Ctx) error {
	trackingNo := strings.ToUpper(strings.TrimSpace(c.Params("tracking_no")))
	if trackingNo == "" {
		return response.BadRequest(c, "Tracking number is required")
	}

	grievance, err := h.grievanceService.Track(c.Context(), trackingNo)
	if err != nil {
		if errors.Is(err, services.ErrGrievanceNotFound) {
			return response.NotFound(c, "Grievance not found")
		}
		return response.InternalServerError(c, "Failed to track grievance")
	}

	// Public view: status only, no personal details
	return response.Success(c, "Grievance status retrieved", fiber.Map{
		"tracking_no": grievance.TrackingNo,
		"status":      grievance.Status,
		"subject":     grievance.Subject,
		"created_at":  grievance.CreatedAt,
		"due_date":    grievance.DueDate,
	})
}

// History returns the audit trail for a grievance
// @Summary Grievance history
// @Description List all recorded lifecycle updates for a grievance
// @Tags Grievances
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grievance ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /grievances/{id}/history [get]
func (h *GrievanceHandler) History(c *fiber.Ctx) error {
	callerID, role, ok := callerIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid grievance ID")
	}

	updates, err := h.grievanceService.History(c.Context(), id, callerID, role)
	if err != nil {
		return grievanceError(c, err, "Failed to get grievance history")
	}

	return response.Success(c, "History retrieved successfully", updates)
}

// Triage moves a grievance into review
// @Summary Triage grievance
// @Description Move a new grievance into review, optionally setting priority
// @Tags Grievances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grievance ID"
// @Param body body StepRequest true "Triage data"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /grievances/{id}/triage [post]
func (h *GrievanceHandler) Triage(c *fiber.Ctx) error {
	return h.lifecycleStep(c, func(id, callerID uint, role domain.Role, req *StepRequest, ip string) (interface{}, error) {
		grievance, err := h.grievanceService.Triage(c.Context(), id, callerID, role, req.Priority, req.Note, ip)
		if err != nil {
			return nil, err
		}
		return grievance.ToResponse(), nil
	}, "Grievance triaged successfully")
}

// Assign assigns a grievance to a field officer
// @Summary Assign grievance
// @Description Assign a reviewed grievance to a field officer
// @Tags Grievances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grievance ID"
// @Param body body AssignRequest true "Assignment data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /grievances/{id}/assign [post]
func (h *GrievanceHandler) Assign(c *fiber.Ctx) error {
	callerID, role, ok := callerIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid grievance ID")
	}

	var req AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.AssigneeID == 0 {
		return response.BadRequest(c, "Assignee is required")
	}

	grievance, err := h.grievanceService.Assign(c.Context(), id, callerID, role, req.AssigneeID, req.Note, c.IP())
	if err != nil {
		return grievanceError(c, err, "Failed to assign grievance")
	}

	return response.Success(c, "Grievance assigned successfully", grievance.ToResponse())
}

// Progress marks an assigned grievance as being worked on
// @Summary Start progress
// @Description Mark an assigned grievance as in progress
// @Tags Grievances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grievance ID"
// @Param body body StepRequest true "Progress note"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /grievances/{id}/progress [post]
func (h *GrievanceHandler) Progress(c *fiber.Ctx) error {
	return h.lifecycleStep(c, func(id, callerID uint, role domain.Role, req *StepRequest, ip string) (interface{}, error) {
		grievance, err := h.grievanceService.Progress(c.Context(), id, callerID, role, req.Note, ip)
		if err != nil {
			return nil, err
		}
		return grievance.ToResponse(), nil
	}, "Grievance in progress")
}

// Resolve marks a grievance as resolved
// @Summary Resolve grievance
// @Description Mark an in-progress grievance as resolved with a resolution note
// @Tags Grievances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grievance ID"
// @Param body body ResolveRequest true "Resolution data"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /grievances/{id}/resolve [post]
func (h *GrievanceHandler) Resolve(c *fiber.Ctx) error {
	callerID, role, ok := callerIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid grievance ID")
	}

	var req ResolveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.ResolutionNote) == "" {
		return response.BadRequest(c, "Resolution note is required")
	}

	grievance, err := h.grievanceService.Resolve(c.Context(), id, callerID, role, req.ResolutionNote, c.IP())
	if err != nil {
		return grievanceError(c, err, "Failed to resolve grievance")
	}

	return response.Success(c, "Grievance resolved successfully", grievance.ToResponse())
}

// Close closes a resolved grievance
// @Summary Close grievance
// @Description Close a resolved grievance
// @Tags Grievances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grievance ID"
// @Param body body StepRequest true "Closing note"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /grievances/{id}/close [post]
func (h *GrievanceHandler) Close(c *fiber.Ctx) error {
	return h.lifecycleStep(c, func(id, callerID uint, role domain.Role, req *StepRequest, ip string) (interface{}, error) {
		grievance, err := h.grievanceService.Close(c.Context(), id, callerID, role, req.Note, ip)
		if err != nil {
			return nil, err
		}
		return grievance.ToResponse(), nil
	}, "Grievance closed successfully")
}

// Reject rejects a grievance
// @Summary Reject grievance
// @Description Reject a grievance that cannot be acted on
// @Tags Grievances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grievance ID"
// @Param body body StepRequest true "Rejection note"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /grievances/{id}/reject [post]
func (h *GrievanceHandler) Reject(c *fiber.Ctx) error {
	return h.lifecycleStep(c, func(id, callerID uint, role domain.Role, req *StepRequest, ip string) (interface{}, error) {
		grievance, err := h.grievanceService.Reject(c.Context(), id, callerID, role, req.Note, ip)
		if err != nil {
			return nil, err
		}
		return grievance.ToResponse(), nil
	}, "Grievance rejected")
}

// Reopen reopens a resolved or closed grievance (owner only)
// @Summary Reopen grievance
// @Description Reopen a resolved or closed grievance; only the filing citizen may reopen
// @Tags Grievances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grievance ID"
// @Param body body StepRequest true "Reopen note"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /grievances/{id}/reopen [post]
func (h *GrievanceHandler) Reopen(c *fiber.Ctx) error {
	return h.lifecycleStep(c, func(id, callerID uint, _ domain.Role, req *StepRequest, ip string) (interface{}, error) {
		grievance, err := h.grievanceService.Reopen(c.Context(), id, callerID, req.Note, ip)
		if err != nil {
			return nil, err
		}
		return grievance.ToResponse(), nil
	}, "Grievance reopened")
}

// Delete removes a grievance (admin only)
// @Summary Delete grievance
// @Description Soft delete a grievance
// @Tags Grievances
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grievance ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /grievances/{id} [delete]
func (h *GrievanceHandler) Delete(c *fiber.Ctx) error {
	callerID, role, ok := callerIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid grievance ID")
	}

	if err := h.grievanceService.Delete(c.Context(), id, callerID, role); err != nil {
		return grievanceError(c, err, "Failed to delete grievance")
	}

	return response.Success(c, "Grievance deleted successfully", nil)
}

// lifecycleStep factors the common shape of single-note transition endpoints
func (h *GrievanceHandler) lifecycleStep(
	c *fiber.Ctx,
	step func(id, callerID uint, role domain.Role, req *StepRequest, ip string) (interface{}, error),
	successMessage string,
) error {
	callerID, role, ok := callerIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid grievance ID")
	}

	var req StepRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	data, err := step(id, callerID, role, &req, c.IP())
	if err != nil {
		return grievanceError(c, err, "Failed to update grievance")
	}

	return response.Success(c, successMessage, data)
}
