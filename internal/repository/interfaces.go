package repository

import (
	"context"

	"github.com/pkazakov/accounts-service/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint) error
	// List returns at most limit users starting at offset, in insertion
	// order, with the City association loaded.
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

type CityRepository interface {
	GetByID(ctx context.Context, id uint) (*domain.City, error)
	GetAll(ctx context.Context) ([]*domain.City, error)
}

type Repositories struct {
	User UserRepository
	City CityRepository
}
