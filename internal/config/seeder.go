package config

import (
	"log"

	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/models"
	"github.com/TeemXTech/Grievance-sub002/internal/core/domain"
	"github.com/TeemXTech/Grievance-sub002/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAccounts(); err != nil {
		log.Printf("⚠️ Account seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAccounts seeds one account per staff role for development.
// In production, accounts are created through the admin user management API.
func (s *Seeder) seedAccounts() error {
	var count int64
	s.db.Model(&models.Account{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return nil // Already seeded
	}

	seeds := []struct {
		email string
		name  string
		role  domain.Role
	}{
		{"admin@example.com", "Portal Administrator", domain.RoleAdmin},
		{"minister@example.com", "Hon. Minister", domain.RoleMinister},
		{"pa@example.com", "Personal Assistant", domain.RolePA},
		{"backoffice@example.com", "Back Office Officer", domain.RoleBackOfficer},
		{"field@example.com", "Field Officer", domain.RoleFieldOfficer},
	}

	hashed, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	for _, seed := range seeds {
		account := &models.Account{
			Email:    seed.email,
			Password: hashed,
			Name:     seed.name,
			Role:     seed.role,
			IsActive: true,
		}
		if err := s.db.Create(account).Error; err != nil {
			return err
		}
		log.Printf("🌱 Seeded account %s [%s]", seed.email, seed.role)
	}

	return nil
}
