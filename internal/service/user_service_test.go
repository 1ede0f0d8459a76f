package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pkazakov/accounts-service/internal/domain"
	"github.com/pkazakov/accounts-service/internal/repository"
	gormrepo "github.com/pkazakov/accounts-service/internal/repository/gorm"
	"github.com/pkazakov/accounts-service/internal/service"
	"github.com/pkazakov/accounts-service/internal/testutil"
)

func newUserFixture(t *testing.T) (*service.UserService, *repository.Repositories, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	repos := gormrepo.NewRepositories(db)
	services := service.NewServices(repos, testutil.TestConfig())
	return services.Users, repos, db
}

func strPtr(s string) *string { return &s }

func uintPtr(u uint) *uint { return &u }

func boolPtr(b bool) *bool { return &b }

func timePtr(t time.Time) *time.Time { return &t }

func TestUserService_Create(t *testing.T) {
	users, _, db := newUserFixture(t)
	ctx := context.Background()

	city := testutil.FirstCity(t, db)
	testutil.NewUserBuilder().WithEmail("taken@example.com").Build(t, db)

	tests := []struct {
		name    string
		input   service.CreateUserInput
		wantErr error
		check   func(*testing.T, *domain.User)
	}{
		{
			name: "basic user with city",
			input: service.CreateUserInput{
				FirstName: "Anna",
				LastName:  "Petrova",
				Email:     "anna@example.com",
				CityID:    &city.ID,
				Password:  "secret123",
			},
			check: func(t *testing.T, u *domain.User) {
				assert.Equal(t, domain.RoleBasic, u.Role)
				assert.NotZero(t, u.ID)
				require.NotNil(t, u.CityID)
				assert.Equal(t, city.ID, *u.CityID)
				assert.NotEqual(t, "secret123", u.PasswordHash)
			},
		},
		{
			name: "superuser flag elevates role",
			input: service.CreateUserInput{
				FirstName: "Boris",
				LastName:  "Ivanov",
				Email:     "boris@example.com",
				IsAdmin:   true,
				Password:  "secret123",
			},
			check: func(t *testing.T, u *domain.User) {
				assert.Equal(t, domain.RoleSuperuser, u.Role)
				assert.True(t, u.IsSuperuser())
			},
		},
		{
			name: "duplicate email is a conflict",
			input: service.CreateUserInput{
				FirstName: "Clone",
				LastName:  "User",
				Email:     "taken@example.com",
				Password:  "secret123",
			},
			wantErr: domain.ErrEmailTaken,
		},
		{
			name: "unknown city is a conflict",
			input: service.CreateUserInput{
				FirstName: "Dana",
				LastName:  "Lost",
				Email:     "dana@example.com",
				CityID:    uintPtr(99999),
				Password:  "secret123",
			},
			wantErr: domain.ErrCityNotFound,
		},
		{
			name: "invalid phone is a validation failure",
			input: service.CreateUserInput{
				FirstName: "Eve",
				LastName:  "Badphone",
				Email:     "eve@example.com",
				Phone:     strPtr("not-a-phone"),
				Password:  "secret123",
			},
			wantErr: domain.ErrInvalidPhone,
		},
		{
			name: "future birthday is a validation failure",
			input: service.CreateUserInput{
				FirstName: "Finn",
				LastName:  "Unborn",
				Email:     "finn@example.com",
				Birthday:  timePtr(time.Now().AddDate(1, 0, 0)),
				Password:  "secret123",
			},
			wantErr: domain.ErrBirthdayInFuture,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := users.Create(ctx, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestUserService_UpdateCurrent_SparseMerge(t *testing.T) {
	users, _, db := newUserFixture(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithName("Old", "Name").
		WithPhone("+14155552671").
		Build(t, db)

	updated, err := users.UpdateCurrent(ctx, user, service.UpdateUserInput{
		FirstName: strPtr("New"),
	})
	require.NoError(t, err)

	// Only the supplied field changes; everything else is untouched.
	assert.Equal(t, "New", updated.FirstName)
	assert.Equal(t, "Name", updated.LastName)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "+14155552671", *updated.Phone)

	stored, err := users.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", stored.FirstName)
	require.NotNil(t, stored.Phone)
	assert.Equal(t, "+14155552671", *stored.Phone)
}

func TestUserService_UpdateCurrent_EmailConflict(t *testing.T) {
	users, _, db := newUserFixture(t)
	ctx := context.Background()

	testutil.NewUserBuilder().WithEmail("claimed@example.com").Build(t, db)
	user, _ := testutil.NewUserBuilder().WithEmail("mine@example.com").Build(t, db)

	_, err := users.UpdateCurrent(ctx, user, service.UpdateUserInput{
		Email: strPtr("claimed@example.com"),
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	// Re-submitting the own unchanged email is not a conflict.
	fresh, err := users.Get(ctx, user.ID)
	require.NoError(t, err)
	_, err = users.UpdateCurrent(ctx, fresh, service.UpdateUserInput{
		Email: strPtr("mine@example.com"),
	})
	assert.NoError(t, err)
}

func TestUserService_UpdateByID(t *testing.T) {
	users, _, db := newUserFixture(t)
	ctx := context.Background()

	city := testutil.FirstCity(t, db)
	user, _ := testutil.NewUserBuilder().Build(t, db)

	updated, err := users.UpdateByID(ctx, user.ID, service.AdminUpdateUserInput{
		UpdateUserInput: service.UpdateUserInput{
			LastName: strPtr("Promoted"),
		},
		CityID:         &city.ID,
		AdditionalInfo: strPtr("handled by support"),
		IsAdmin:        boolPtr(true),
	})
	require.NoError(t, err)

	assert.Equal(t, "Promoted", updated.LastName)
	assert.Equal(t, domain.RoleSuperuser, updated.Role)
	require.NotNil(t, updated.CityID)
	assert.Equal(t, city.ID, *updated.CityID)
	require.NotNil(t, updated.AdditionalInfo)
	assert.Equal(t, "handled by support", *updated.AdditionalInfo)

	// Demotion via the same flag.
	updated, err = users.UpdateByID(ctx, user.ID, service.AdminUpdateUserInput{
		IsAdmin: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleBasic, updated.Role)

	_, err = users.UpdateByID(ctx, 99999, service.AdminUpdateUserInput{})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = users.UpdateByID(ctx, user.ID, service.AdminUpdateUserInput{
		CityID: uintPtr(99999),
	})
	assert.ErrorIs(t, err, domain.ErrCityNotFound)
}

func TestUserService_Delete(t *testing.T) {
	users, _, db := newUserFixture(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, db)

	require.NoError(t, users.Delete(ctx, user.ID))

	_, err := users.Get(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	// Deleting again reports the missing record.
	assert.ErrorIs(t, users.Delete(ctx, user.ID), domain.ErrUserNotFound)
}

func TestUserService_ListPage(t *testing.T) {
	users, _, db := newUserFixture(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		testutil.NewUserBuilder().
			WithEmail(fmt.Sprintf("user%02d@example.com", i)).
			Build(t, db)
	}

	tests := []struct {
		name      string
		page      int
		size      int
		wantCount int
	}{
		{"first page", 1, 10, 10},
		{"middle page", 2, 10, 10},
		{"short last page", 3, 10, 5},
		{"page past the end", 4, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, _, total, err := users.ListPage(ctx, tt.page, tt.size)
			require.NoError(t, err)
			assert.Len(t, page, tt.wantCount)
			// Total is the unfiltered record count regardless of page.
			assert.Equal(t, int64(25), total)
		})
	}

	t.Run("pages are contiguous and ordered", func(t *testing.T) {
		first, _, _, err := users.ListPage(ctx, 1, 10)
		require.NoError(t, err)
		third, _, _, err := users.ListPage(ctx, 3, 10)
		require.NoError(t, err)
		assert.Equal(t, "user00@example.com", first[0].Email)
		assert.Equal(t, "user20@example.com", third[0].Email)
	})
}

func TestUserService_ListPage_CityHints(t *testing.T) {
	users, _, db := newUserFixture(t)
	ctx := context.Background()

	city := testutil.FirstCity(t, db)

	// Three users share a city, one has none: three hints, no dedup.
	testutil.NewUserBuilder().WithEmail("a@example.com").WithCityID(city.ID).Build(t, db)
	testutil.NewUserBuilder().WithEmail("b@example.com").Build(t, db)
	testutil.NewUserBuilder().WithEmail("c@example.com").WithCityID(city.ID).Build(t, db)
	testutil.NewUserBuilder().WithEmail("d@example.com").WithCityID(city.ID).Build(t, db)

	_, hints, total, err := users.ListPage(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	require.Len(t, hints, 3)
	for _, hint := range hints {
		assert.Equal(t, city.ID, hint.ID)
		assert.Equal(t, city.Name, hint.Name)
	}
}
