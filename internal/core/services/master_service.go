package services

import (
	"context"
	"errors"
	"strings"

	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/models"
	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Master data service errors
var (
	ErrMasterNotFound    = errors.New("master data record not found")
	ErrDuplicateCode     = errors.New("code already exists")
	ErrMasterCodeMissing = errors.New("code is required")
)

// MasterService handles master data (categories, districts)
type MasterService struct {
	categoryRepo repositories.CategoryRepository
	districtRepo repositories.DistrictRepository
}

// NewMasterService creates a new master data service
func NewMasterService(
	categoryRepo repositories.CategoryRepository,
	districtRepo repositories.DistrictRepository,
) *MasterService {
	return &MasterService{
		categoryRepo: categoryRepo,
		districtRepo: districtRepo,
	}
}

// CategoryInput represents category create/update input
type CategoryInput struct {
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	SLADays     int    `json:"sla_days,omitempty"`
}

// DistrictInput represents district create/update input
type DistrictInput struct {
	Code string `json:"code" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// ListCategories returns all grievance categories
func (s *MasterService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.List(ctx)
}

// CreateCategory creates a new grievance category
func (s *MasterService) CreateCategory(ctx context.Context, input *CategoryInput) (*models.Category, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, ErrMasterCodeMissing
	}

	category := &models.Category{
		Code:        code,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		SLADays:     input.SLADays,
	}
	if category.SLADays <= 0 {
		category.SLADays = 14
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCode
		}
		return nil, err
	}
	return category, nil
}

// UpdateCategory updates an existing category
func (s *MasterService) UpdateCategory(ctx context.Context, id uint, input *CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMasterNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		category.Name = strings.TrimSpace(input.Name)
	}
	if input.Description != "" {
		category.Description = input.Description
	}
	if input.SLADays > 0 {
		category.SLADays = input.SLADays
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category
func (s *MasterService) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMasterNotFound
		}
		return err
	}
	return s.categoryRepo.Delete(ctx, id)
}

// ListDistricts returns all districts
func (s *MasterService) ListDistricts(ctx context.Context) ([]*models.District, error) {
	return s.districtRepo.List(ctx)
}

// CreateDistrict creates a new district
func (s *MasterService) CreateDistrict(ctx context.Context, input *DistrictInput) (*models.District, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, ErrMasterCodeMissing
	}

	district := &models.District{
		Code: code,
		Name: strings.TrimSpace(input.Name),
	}
	if err := s.districtRepo.Create(ctx, district); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCode
		}
		return nil, err
	}
	return district, nil
}

// UpdateDistrict updates an existing district
func (s *MasterService) UpdateDistrict(ctx context.Context, id uint, input *DistrictInput) (*models.District, error) {
	district, err := s.districtRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMasterNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		district.Name = strings.TrimSpace(input.Name)
	}

	if err := s.districtRepo.Update(ctx, district); err != nil {
		return nil, err
	}
	return district, nil
}

// DeleteDistrict removes a district
func (s *MasterService) DeleteDistrict(ctx context.Context, id uint) error {
	if _, err := s.districtRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMasterNotFound
		}
		return err
	}
	return s.districtRepo.Delete(ctx, id)
}
