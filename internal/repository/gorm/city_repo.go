package gormrepo

import (
	"context"

	"github.com/pkazakov/accounts-service/internal/domain"
	"gorm.io/gorm"
)

type cityRepository struct {
	db *gorm.DB
}

func NewCityRepository(db *gorm.DB) *cityRepository {
	return &cityRepository{db: db}
}

func (r *cityRepository) GetByID(ctx context.Context, id uint) (*domain.City, error) {
	var city domain.City
	err := r.db.WithContext(ctx).First(&city, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *cityRepository) GetAll(ctx context.Context) ([]*domain.City, error) {
	var cities []*domain.City
	err := r.db.WithContext(ctx).Order("id").Find(&cities).Error
	if err != nil {
		return nil, err
	}
	return cities, nil
}
