package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/mhoudali/interim_app/internal/models"
	"github.com/mhoudali/interim_app/internal/repo"
	"github.com/mhoudali/interim_app/internal/tokens"
)

func initTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Company{}, &models.Job{}, &models.Application{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return repo.New(db)
}

func newAuthService(rp *repo.GormRepo) *AuthService {
	return &AuthService{
		Repo:   rp,
		Tokens: tokens.NewService([]byte("test-jwt-secret")),
	}
}

// registerTestCompany and registerTestUser go through the real register
// flow so fixtures carry hashed passwords and issued ids.
func registerTestCompany(t *testing.T, rp *repo.GormRepo, email string) string {
	t.Helper()

	res, err := newAuthService(rp).RegisterCompany(context.Background(), RegisterCompanyInput{
		Email:       email,
		Password:    "password123",
		Name:        "TechCorp",
		Description: "ESN lyonnaise",
	})
	if err != nil {
		t.Fatalf("failed to register company: %v", err)
	}
	return res.PrincipalID
}

func registerTestUser(t *testing.T, rp *repo.GormRepo, email string) string {
	t.Helper()

	res, err := newAuthService(rp).RegisterUser(context.Background(), RegisterUserInput{
		Email:     email,
		Password:  "password123",
		LastName:  "Dupont",
		FirstName: "Jean",
	})
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	return res.PrincipalID
}

func createTestJob(t *testing.T, rp *repo.GormRepo, companyID string, in CreateJobInput) *models.Job {
	t.Helper()

	job, err := (&JobService{Repo: rp}).Create(context.Background(), companyID, in)
	if err != nil {
		t.Fatalf("failed to create job: %v", err)
	}
	return job
}
