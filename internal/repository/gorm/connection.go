package gormrepo

import (
	"os"
	"path/filepath"

	"github.com/pkazakov/accounts-service/internal/config"
	"github.com/pkazakov/accounts-service/internal/domain"
	"github.com/pkazakov/accounts-service/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.Debug {
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(cfg.SQLitePath)
	} else {
		dialector = postgres.Open(cfg.DatabaseURL)
	}

	logMode := logger.Warn
	if cfg.Debug {
		logMode = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates the schema and seeds the city lookup table when empty.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.City{},
		&domain.User{},
	); err != nil {
		return err
	}
	return seedCities(db)
}

func seedCities(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.City{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	cities := []domain.City{
		{Name: "London"},
		{Name: "Paris"},
		{Name: "Berlin"},
		{Name: "Madrid"},
		{Name: "Amsterdam"},
	}
	return db.Create(&cities).Error
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User: NewUserRepository(db),
		City: NewCityRepository(db),
	}
}
