package handlers

import (
	"errors"

	"github.com/TeemXTech/Grievance-sub002/internal/core/services"
	"github.com/TeemXTech/Grievance-sub002/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MasterHandler handles master data endpoints (categories, districts)
type MasterHandler struct {
	masterService *services.MasterService
}

// NewMasterHandler creates a new master data handler
func NewMasterHandler(masterService *services.MasterService) *MasterHandler {
	return &MasterHandler{masterService: masterService}
}

func masterError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrMasterNotFound):
		return response.NotFound(c, "Record not found")
	case errors.Is(err, services.ErrDuplicateCode):
		return response.Conflict(c, "Code already exists")
	case errors.Is(err, services.ErrMasterCodeMissing):
		return response.BadRequest(c, "Code is required")
	default:
		return response.InternalServerError(c, fallback)
	}
}

// ListCategories returns all grievance categories
// @Summary List categories
// @Description List all grievance categories with their SLA days
// @Tags Master
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /categories [get]
func (h *MasterHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.masterService.ListCategories(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list categories")
	}
	return response.Success(c, "Categories retrieved successfully", categories)
}

// CreateCategory creates a category
// @Summary Create category
// @Description Create a grievance category (admin only)
// @Tags Master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CategoryInput true "Category data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /master/categories [post]
func (h *MasterHandler) CreateCategory(c *fiber.Ctx) error {
	var input services.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	category, err := h.masterService.CreateCategory(c.Context(), &input)
	if err != nil {
		return masterError(c, err, "Failed to create category")
	}
	return response.Created(c, "Category created successfully", category)
}

// UpdateCategory updates a category
// @Summary Update category
// @Description Update a grievance category (admin only)
// @Tags Master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param body body services.CategoryInput true "Category data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /master/categories/{id} [put]
func (h *MasterHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid category ID")
	}

	var input services.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	category, err := h.masterService.UpdateCategory(c.Context(), id, &input)
	if err != nil {
		return masterError(c, err, "Failed to update category")
	}
	return response.Success(c, "Category updated successfully", category)
}

// DeleteCategory removes a category
// @Summary Delete category
// @Description Soft delete a grievance category (admin only)
// @Tags Master
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /master/categories/{id} [delete]
func (h *MasterHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid category ID")
	}

	if err := h.masterService.DeleteCategory(c.Context(), id); err != nil {
		return masterError(c, err, "Failed to delete category")
	}
	return response.Success(c, "Category deleted successfully", nil)
}

// ListDistricts returns all districts
// @Summary List districts
// @Description List all administrative districts
// @Tags Master
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /districts [get]
func (h *MasterHandler) ListDistricts(c *fiber.Ctx) error {
	districts, err := h.masterService.ListDistricts(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list districts")
	}
	return response.Success(c, "Districts retrieved successfully", districts)
}

// CreateDistrict creates a district
// @Summary Create district
// @Description Create an administrative district (admin only)
// @Tags Master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.DistrictInput true "District data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /master/districts [post]
func (h *MasterHandler) CreateDistrict(c *fiber.Ctx) error {
	var input services.DistrictInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	district, err := h.masterService.CreateDistrict(c.Context(), &input)
	if err != nil {
		return masterError(c, err, "Failed to create district")
	}
	return response.Created(c, "District created successfully", district)
}

// UpdateDistrict updates a district
// @Summary Update district
// @Description Update an administrative district (admin only)
// @Tags Master
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "District ID"
// @Param body body services.DistrictInput true "District data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /master/districts/{id} [put]
func (h *MasterHandler) UpdateDistrict(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid district ID")
	}

	var input services.DistrictInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	district, err := h.masterService.UpdateDistrict(c.Context(), id, &input)
	if err != nil {
		return masterError(c, err, "Failed to update district")
	}
	return response.Success(c, "District updated successfully", district)
}

// DeleteDistrict removes a district
// @Summary Delete district
// @Description Soft delete an administrative district (admin only)
// @Tags Master
// @Produce json
// @Security BearerAuth
// @Param id path int true "District ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /master/districts/{id} [delete]
func (h *MasterHandler) DeleteDistrict(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid district ID")
	}

	if err := h.masterService.DeleteDistrict(c.Context(), id); err != nil {
		return masterError(c, err, "Failed to delete district")
	}
	return response.Success(c, "District deleted successfully", nil)
}
