package service

import (
	"context"
	"time"

	"github.com/mhoudali/interim_app/internal/hash"
	"github.com/mhoudali/interim_app/internal/logging"
	"github.com/mhoudali/interim_app/internal/models"
	"github.com/mhoudali/interim_app/internal/repo"
)

type CompanyService struct {
	Repo *repo.GormRepo
}

type UpdateCompanyInput struct {
	Name        *string
	Description *string
	Sector      *string
	Address     *string
	Phone       *string
	Website     *string
	Password    *string
}

func (s *CompanyService) List(ctx context.Context, offset, limit int) (int64, []models.Company, error) {
	return s.Repo.ListCompanies(ctx, offset, limit)
}

func (s *CompanyService) Get(ctx context.Context, id string) (*models.Company, error) {
	return s.Repo.GetCompany(ctx, id)
}

func (s *CompanyService) Update(ctx context.Context, id string, in UpdateCompanyInput) (*models.Company, error) {
	l := logging.FromContext(ctx).With("svc", "companies.update", "company_id", id)

	company, err := s.Repo.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		company.Name = *in.Name
	}
	if in.Description != nil {
		company.Description = *in.Description
	}
	if in.Sector != nil {
		company.Sector = *in.Sector
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.Phone != nil {
		company.Phone = *in.Phone
	}
	if in.Website != nil {
		company.Website = *in.Website
	}
	if in.Password != nil {
		if err := validatePassword(*in.Password); err != nil {
			return nil, err
		}
		pwHash, err := hash.HashPassword(*in.Password)
		if err != nil {
			l.Error("update_failed", "status", 500, "reason", "cannot hash the password", "error", err)
			return nil, err
		}
		company.PasswordHash = pwHash
	}
	company.UpdatedAt = time.Now().UTC()

	if err := s.Repo.SaveCompany(ctx, company); err != nil {
		l.Error("update_failed", "error", err)
		return nil, err
	}

	return company, nil
}

func (s *CompanyService) Delete(ctx context.Context, id string) error {
	return s.Repo.DeleteCompany(ctx, id)
}

// Profile returns the company plus the number of jobs it has posted.
func (s *CompanyService) Profile(ctx context.Context, id string) (*models.Company, int64, error) {
	company, err := s.Repo.GetCompany(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	total, _, err := s.Repo.ListJobsByCompany(ctx, id, 0, 1)
	if err != nil {
		return nil, 0, err
	}

	return company, total, nil
}

func (s *CompanyService) Jobs(ctx context.Context, id string, offset, limit int) (int64, []models.Job, error) {
	if _, err := s.Repo.GetCompany(ctx, id); err != nil {
		return 0, nil, err
	}
	return s.Repo.ListJobsByCompany(ctx, id, offset, limit)
}
