package service

import (
	"context"
	"errors"
	"time"

	"github.com/pkazakov/accounts-service/internal/domain"
	"github.com/pkazakov/accounts-service/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService owns user-record mutation and paginated listing.
type UserService struct {
	userRepo repository.UserRepository
	cityRepo repository.CityRepository
}

func NewUserService(userRepo repository.UserRepository, cityRepo repository.CityRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		cityRepo: cityRepo,
	}
}

type CreateUserInput struct {
	FirstName      string
	LastName       string
	OtherName      *string
	Email          string
	Phone          *string
	Birthday       *time.Time
	CityID         *uint
	AdditionalInfo *string
	IsAdmin        bool
	Password       string
}

// UpdateUserInput is the self-service patch: every field is optional and only
// non-nil fields overwrite. Role and city are deliberately absent.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	OtherName *string
	Email     *string
	Phone     *string
	Birthday  *time.Time
}

// AdminUpdateUserInput extends the self-service patch with the privileged
// fields: city reference, free-text info and the admin flag.
type AdminUpdateUserInput struct {
	UpdateUserInput
	CityID         *uint
	AdditionalInfo *string
	IsAdmin        *bool
}

func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if _, err := s.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if input.CityID != nil {
		if _, err := s.cityRepo.GetByID(ctx, *input.CityID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrCityNotFound
			}
			return nil, err
		}
	}

	role := domain.RoleBasic
	if input.IsAdmin {
		role = domain.RoleSuperuser
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		PasswordHash:   string(hashed),
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		OtherName:      input.OtherName,
		Email:          input.Email,
		Phone:          input.Phone,
		Birthday:       input.Birthday,
		CityID:         input.CityID,
		AdditionalInfo: input.AdditionalInfo,
		Role:           role,
	}

	if err := domain.ValidateUser(user); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateCurrent applies a self-service sparse patch to the authenticated
// user's own record.
func (s *UserService) UpdateCurrent(ctx context.Context, user *domain.User, patch UpdateUserInput) (*domain.User, error) {
	if err := s.checkEmailFree(ctx, patch.Email, user); err != nil {
		return nil, err
	}

	applyUserPatch(user, patch)

	if err := domain.ValidateUser(user); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateByID applies a privileged sparse patch to an arbitrary record,
// including role and city.
func (s *UserService) UpdateByID(ctx context.Context, id uint, patch AdminUpdateUserInput) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkEmailFree(ctx, patch.Email, user); err != nil {
		return nil, err
	}

	if patch.CityID != nil {
		if _, err := s.cityRepo.GetByID(ctx, *patch.CityID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrCityNotFound
			}
			return nil, err
		}
	}

	applyUserPatch(user, patch.UpdateUserInput)
	if patch.CityID != nil {
		user.CityID = patch.CityID
		// Drop the stale association so projections resolve the new city.
		user.City = nil
	}
	if patch.AdditionalInfo != nil {
		user.AdditionalInfo = patch.AdditionalInfo
	}
	if patch.IsAdmin != nil {
		if *patch.IsAdmin {
			user.Role = domain.RoleSuperuser
		} else {
			user.Role = domain.RoleBasic
		}
	}

	if err := domain.ValidateUser(user); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the record outright. A missing target is reported as
// domain.ErrUserNotFound; the API boundary deliberately maps it to a
// conflict on this operation.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

// ListPage returns the 1-indexed page of users, the city hint projection for
// that page, and the unfiltered total. Hints carry one entry per listed user
// with a home city, in page order, without deduplication.
func (s *UserService) ListPage(ctx context.Context, page, size int) ([]*domain.User, []domain.CityHint, int64, error) {
	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, nil, 0, err
	}

	offset := (page - 1) * size
	users, err := s.userRepo.List(ctx, size, offset)
	if err != nil {
		return nil, nil, 0, err
	}

	hints := make([]domain.CityHint, 0, len(users))
	for _, u := range users {
		if u.CityID != nil && u.City != nil {
			hints = append(hints, domain.CityHint{ID: *u.CityID, Name: u.City.Name})
		}
	}
	return users, hints, total, nil
}

// applyUserPatch is the enumerated sparse merge over the shared patch fields:
// only non-nil values overwrite.
func applyUserPatch(user *domain.User, patch UpdateUserInput) {
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.OtherName != nil {
		user.OtherName = patch.OtherName
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Phone != nil {
		user.Phone = patch.Phone
	}
	if patch.Birthday != nil {
		user.Birthday = patch.Birthday
	}
}

// checkEmailFree rejects an email change that collides with another record.
// A nil or unchanged email is never probed.
func (s *UserService) checkEmailFree(ctx context.Context, email *string, current *domain.User) error {
	if email == nil || *email == current.Email {
		return nil
	}
	existing, err := s.userRepo.GetByEmail(ctx, *email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != current.ID {
		return domain.ErrEmailTaken
	}
	return nil
}
