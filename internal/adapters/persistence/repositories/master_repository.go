package repositories

import (
	"context"

	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// categoryRepository implements CategoryRepository interface
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("code").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, id).Error
}

// districtRepository implements DistrictRepository interface
type districtRepository struct {
	db *gorm.DB
}

// NewDistrictRepository creates a new district repository
func NewDistrictRepository(db *gorm.DB) DistrictRepository {
	return &districtRepository{db: db}
}

func (r *districtRepository) Create(ctx context.Context, district *models.District) error {
	return r.db.WithContext(ctx).Create(district).Error
}

func (r *districtRepository) GetByID(ctx context.Context, id uint) (*models.District, error) {
	var district models.District
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&district).Error
	if err != nil {
		return nil, err
	}
	return &district, nil
}

func (r *districtRepository) List(ctx context.Context) ([]*models.District, error) {
	var districts []*models.District
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("code").Find(&districts).Error
	if err != nil {
		return nil, err
	}
	return districts, nil
}

func (r *districtRepository) Update(ctx context.Context, district *models.District) error {
	return r.db.WithContext(ctx).Save(district).Error
}

func (r *districtRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.District{}, id).Error
}
