package handlers

import (
	"errors"
	"time"

	"github.com/TeemXTech/Grievance-sub002/internal/core/services"
	"github.com/TeemXTech/Grievance-sub002/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EventHandler handles calendar event endpoints
type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// EventRequest represents event create/update request body
type EventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

// List returns events in a time window
// @Summary List events
// @Description List calendar events overlapping a window (defaults to next 30 days)
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param from query string false "Window start (RFC3339)"
// @Param to query string false "Window end (RFC3339)"
// @Success 200 {object} response.Response
// @Router /events [get]
func (h *EventHandler) List(c *fiber.Ctx) error {
	var from, to time.Time
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return response.BadRequest(c, "Invalid 'from' timestamp")
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return response.BadRequest(c, "Invalid 'to' timestamp")
		}
		to = parsed
	}

	events, err := h.eventService.ListWindow(c.Context(), from, to)
	if err != nil {
		return response.InternalServerError(c, "Failed to list events")
	}

	return response.Success(c, "Events retrieved successfully", events)
}

// Get returns one event
// @Summary Get event
// @Description Get a calendar event by ID
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /events/{id} [get]
func (h *EventHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid event ID")
	}

	event, err := h.eventService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return response.NotFound(c, "Event not found")
		}
		return response.InternalServerError(c, "Failed to get event")
	}

	return response.Success(c, "Event retrieved successfully", event)
}

// Create creates a calendar event
// @Summary Create event
// @Description Schedule a new calendar event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EventRequest true "Event data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /events [post]
func (h *EventHandler) Create(c *fiber.Ctx) error {
	accountID, ok := c.Locals("accountID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req EventRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Title == "" {
		return response.BadRequest(c, "Title is required")
	}

	event, err := h.eventService.Create(c.Context(), accountID, &services.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidWindow) {
			return response.BadRequest(c, "Event must end after it starts")
		}
		return response.InternalServerError(c, "Failed to create event")
	}

	return response.Created(c, "Event created successfully", event)
}

// Update updates a calendar event
// @Summary Update event
// @Description Update an existing calendar event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param body body EventRequest true "Event data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /events/{id} [put]
func (h *EventHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid event ID")
	}

	var req EventRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	event, err := h.eventService.Update(c.Context(), id, &services.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			return response.NotFound(c, "Event not found")
		case errors.Is(err, services.ErrInvalidWindow):
			return response.BadRequest(c, "Event must end after it starts")
		default:
			return response.InternalServerError(c, "Failed to update event")
		}
	}

	return response.Success(c, "Event updated successfully", event)
}

// Delete removes a calendar event
// @Summary Delete event
// @Description Delete a calendar event
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid event ID")
	}

	if err := h.eventService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return response.NotFound(c, "Event not found")
		}
		return response.InternalServerError(c, "Failed to delete event")
	}

	return response.Success(c, "Event deleted successfully", nil)
}
