package database

import (
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/gorm"

	"paddock-backend/shared/database/models"
	"paddock-backend/shared/database/models/care"
	"paddock-backend/shared/utils/access"
	utils "paddock-backend/shared/utils/auth"
)

// CreateSuperAdmin creates the bootstrap superadmin account. Running it
// twice is safe, an existing account with the same email is left alone.
func CreateSuperAdmin(email, password, firstName, lastName string) error {
	var existing models.Profile
	err := DB.Where("email = ?", utils.NormalizeEmail(email)).First(&existing).Error
	if err == nil {
		log.Printf("✅ Super admin already exists: %s", existing.Email)
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("failed to check super admin: %w", err)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := models.Profile{
		Email:        utils.NormalizeEmail(email),
		Password:     hashed,
		FirstName:    firstName,
		LastName:     lastName,
		IsSuperadmin: true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create super admin: %w", err)
	}

	log.Printf("✅ Super admin created: %s", admin.Email)
	return nil
}

// SeedDatabase creates a sample organization with an enclosure, a species
// and a recurring task so a fresh install has something to look at.
// Idempotent, it does nothing when the sample org already exists.
func SeedDatabase() error {
	var count int64
	if err := DB.Model(&models.Organization{}).
		Where("name = ?", "Demo Sanctuary").Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check seed data: %w", err)
	}
	if count > 0 {
		log.Println("✅ Seed data already present - skipping")
		return nil
	}

	hashed, err := utils.HashPassword("demo1234")
	if err != nil {
		return err
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		owner := models.Profile{
			Email:     "demo@paddock.app",
			Password:  hashed,
			FirstName: "Demo",
			LastName:  "Keeper",
		}
		if err := tx.Create(&owner).Error; err != nil {
			return err
		}

		org := models.Organization{Name: "Demo Sanctuary"}
		if err := tx.Create(&org).Error; err != nil {
			return err
		}

		membership := models.Membership{
			UserID:    owner.ID,
			OrgID:     org.ID,
			AccessLvl: access.LevelSuperadmin,
		}
		if err := tx.Create(&membership).Error; err != nil {
			return err
		}

		enclosure := care.Enclosure{
			OrgID:    org.ID,
			Name:     "River Habitat",
			Location: "North wing",
		}
		if err := tx.Create(&enclosure).Error; err != nil {
			return err
		}

		species := care.Species{
			OrgID:       org.ID,
			Name:        "North American river otter",
			Description: "Semi-aquatic, needs daily enrichment",
		}
		if err := tx.Create(&species).Error; err != nil {
			return err
		}

		fields, err := json.Marshal([]care.TaskField{
			{Key: "water_temp", Label: "Water temperature (°C)", Kind: "number", Required: true},
			{Key: "fed", Label: "Morning feeding done", Kind: "checkbox", Required: true},
			{Key: "notes", Label: "Notes", Kind: "text"},
		})
		if err != nil {
			return err
		}

		task := care.TaskTemplate{
			OrgID:        org.ID,
			EnclosureID:  enclosure.ID,
			Title:        "Morning water check",
			Description:  "Check water quality and feed",
			Fields:       fields,
			IntervalDays: 1,
		}
		if err := tx.Create(&task).Error; err != nil {
			return err
		}

		log.Println("🌱 Sample organization seeded: Demo Sanctuary (demo@paddock.app / demo1234)")
		return nil
	})
}
