package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/devnotex/devnotex/internal/models"
)

// Connect opens the database named by driver ("postgres" or "mysql") and
// returns the handle. Callers own the handle and pass it down explicitly;
// there is no package-level connection.
func Connect(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}

	// TranslateError maps driver-specific failures (e.g. unique violations)
	// onto gorm's portable sentinels.
	return gorm.Open(dialector, &gorm.Config{TranslateError: true})
}

func Migrate(gdb *gorm.DB) error {
	entities := []interface{}{
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Note{},
		&models.Task{},
		&models.Document{},
	}

	migrator := gdb.Migrator()

	for _, entity := range entities {
		if !migrator.HasTable(entity) {
			if err := gdb.AutoMigrate(entity); err != nil {
				return err
			}
		}
	}

	return nil
}
