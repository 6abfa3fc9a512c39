package db

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/devnotex/devnotex/internal/models"
	"github.com/devnotex/devnotex/internal/types"
)

const seedEmail = "demo@devnotex.com"

// Seed creates a demo admin with one project. Idempotent: a second run finds
// the demo user and does nothing. Any failure is returned so startup can
// abort; seeding errors are never recovered.
func Seed(gdb *gorm.DB) error {
	var existing models.User

	err := gdb.Where("email = ?", seedEmail).First(&existing).Error

	if err == nil {
		log.Println("Seed data already exists, skipping")
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte("testpass"), bcrypt.DefaultCost)

	if err != nil {
		return err
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Email:        seedEmail,
			PasswordHash: string(passwordHash),
			FullName:     "Demo Admin",
		}

		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		project := models.Project{
			Name:        "DevNoteX Project",
			Description: "Demo project for the DevNoteX platform",
			CreatedBy:   user.ID,
		}

		if err := tx.Create(&project).Error; err != nil {
			return err
		}

		member := models.ProjectMember{
			ProjectID: project.ID,
			UserID:    user.ID,
			Role:      types.RoleAdmin,
		}

		if err := tx.Create(&member).Error; err != nil {
			return err
		}

		log.Printf("Seeded demo user %s with project %q", user.Email, project.Name)
		return nil
	})
}
