package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pkazakov/accounts-service/internal/domain"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	firstName string
	lastName  string
	email     string
	password  string
	role      domain.Role
	phone     *string
	birthday  *time.Time
	cityID    *uint
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		firstName: "Test",
		lastName:  "User",
		email:     fmt.Sprintf("test_%s@example.com", uuid.NewString()[:8]),
		password:  "testpassword123",
		role:      domain.RoleBasic,
	}
}

func (b *UserBuilder) WithName(first, last string) *UserBuilder {
	b.firstName = first
	b.lastName = last
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

func (b *UserBuilder) AsSuperuser() *UserBuilder {
	b.role = domain.RoleSuperuser
	return b
}

func (b *UserBuilder) WithPhone(phone string) *UserBuilder {
	b.phone = &phone
	return b
}

func (b *UserBuilder) WithBirthday(birthday time.Time) *UserBuilder {
	b.birthday = &birthday
	return b
}

func (b *UserBuilder) WithCityID(id uint) *UserBuilder {
	b.cityID = &id
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		FirstName:    b.firstName,
		LastName:     b.lastName,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		Role:         b.role,
		Phone:        b.phone,
		Birthday:     b.birthday,
		CityID:       b.cityID,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// FirstCity returns a seeded city to reference from test users.
func FirstCity(t *testing.T, db *gorm.DB) *domain.City {
	t.Helper()

	var city domain.City
	if err := db.Order("id").First(&city).Error; err != nil {
		t.Fatalf("failed to load seeded city: %v", err)
	}
	return &city
}

// Login authenticates against the test server and returns the session
// cookies the server set.
func Login(t *testing.T, ts *TestServer, login, password string) []*http.Cookie {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"login":    login,
		"password": password,
	})
	resp, err := http.Post(ts.URL("/login"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed with status %d", resp.StatusCode)
	}

	return resp.Cookies()
}

// Request performs an HTTP request against the test server carrying the
// given cookies and an optional JSON body.
func Request(t *testing.T, ts *TestServer, method, path string, cookies []*http.Cookie, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, ts.URL(path), reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}
