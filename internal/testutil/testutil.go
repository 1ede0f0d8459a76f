package testutil

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pkazakov/accounts-service/internal/api"
	"github.com/pkazakov/accounts-service/internal/config"
	"github.com/pkazakov/accounts-service/internal/repository"
	gormrepo "github.com/pkazakov/accounts-service/internal/repository/gorm"
	"github.com/pkazakov/accounts-service/internal/service"
)

// NewTestDB opens an isolated in-memory sqlite database with the schema
// migrated and the city lookup seeded. Each call gets its own database; it
// lives for as long as the connection pool holds it.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A single connection keeps the shared in-memory database alive and
	// serializes access, which sqlite needs under concurrent writes.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := gormrepo.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:            "0",
		Environment:     "test",
		Debug:           true,
		JWTSecret:       "test-jwt-secret-key-for-testing-only",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		SecureCookies:   false, // httptest serves plain HTTP
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	DB       *gorm.DB
	Repos    *repository.Repositories
	Services *service.Services
	Config   *config.Config
}

// NewTestServer creates a complete test server with all dependencies
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	db := NewTestDB(t)
	cfg := TestConfig()

	repos := gormrepo.NewRepositories(db)
	services := service.NewServices(repos, cfg)
	router := api.NewRouter(services, zerolog.Nop())

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       db,
		Repos:    repos,
		Services: services,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
	})

	return ts
}

// URL returns the full URL for a given path
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}
