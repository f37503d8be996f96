package config

import (
	"log"

	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// SeedMasterData seeds initial master data
func SeedMasterData(db *gorm.DB) error {
	if err := seedCategories(db); err != nil {
		return err
	}

	if err := seedDistricts(db); err != nil {
		return err
	}

	log.Println("✅ Master data seeded successfully")
	return nil
}

func seedCategories(db *gorm.DB) error {
	categories := []models.Category{
		{
			Code:        "WATER",
			Name:        "Water Supply",
			Description: "Drinking water supply, pipeline leakage, contamination",
			SLADays:     7,
			IsActive:    true,
		},
		{
			Code:        "ROADS",
			Name:        "Roads & Infrastructure",
			Description: "Potholes, street lighting, drainage, footpaths",
			SLADays:     21,
			IsActive:    true,
		},
		{
			Code:        "SANITATION",
			Name:        "Sanitation",
			Description: "Garbage collection, sewage, public toilets",
			SLADays:     7,
			IsActive:    true,
		},
		{
			Code:        "HEALTH",
			Name:        "Public Health",
			Description: "Primary health centres, medicine availability, mosquito control",
			SLADays:     14,
			IsActive:    true,
		},
		{
			Code:        "EDUCATION",
			Name:        "Education",
			Description: "Schools, scholarships, mid-day meals",
			SLADays:     30,
			IsActive:    true,
		},
		{
			Code:        "OTHER",
			Name:        "Other",
			Description: "Grievances outside the listed categories",
			SLADays:     30,
			IsActive:    true,
		},
	}

	for _, category := range categories {
		var count int64
		db.Model(&models.Category{}).Where("code = ?", category.Code).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&category).Error; err != nil {
			return err
		}
	}

	return nil
}

func seedDistricts(db *gorm.DB) error {
	districts := []models.District{
		{Code: "NORTH", Name: "North District", IsActive: true},
		{Code: "SOUTH", Name: "South District", IsActive: true},
		{Code: "EAST", Name: "East District", IsActive: true},
		{Code: "WEST", Name: "West District", IsActive: true},
		{Code: "CENTRAL", Name: "Central District", IsActive: true},
	}

	for _, district := range districts {
		var count int64
		db.Model(&models.District{}).Where("code = ?", district.Code).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&district).Error; err != nil {
			return err
		}
	}

	return nil
}
