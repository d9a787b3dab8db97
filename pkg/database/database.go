package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sefazor/tournest-backend/internal/config"
	"github.com/sefazor/tournest-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres", "":
		if cfg.URL == "" {
			return nil, errors.New("DATABASE_URL is not set")
		}
		dialector = postgres.Open(cfg.URL)
	case "sqlite":
		dsn := cfg.URL
		if dsn == "" {
			dsn = "tournest.db"
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Driver == "sqlite" {
		// a single writer avoids SQLITE_BUSY and keeps :memory: databases on one connection
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Package{},
		&models.Application{},
		&models.Booking{},
		&models.Payment{},
		&models.Story{},
	)
}

// SeedAdmin makes sure the configured email exists with the admin role.
func SeedAdmin(db *gorm.DB, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return db.Create(&models.User{
			Name:      "Admin",
			Email:     email,
			Role:      models.RoleAdmin,
			LastLogIn: time.Now().UTC(),
		}).Error
	case err != nil:
		return err
	case user.Role != models.RoleAdmin:
		return db.Model(&user).Update("role", models.RoleAdmin).Error
	}
	return nil
}

func logLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
