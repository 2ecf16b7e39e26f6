package service

import (
	"context"
	"errors"
	"time"

	"github.com/mhoudali/interim_app/internal/apperr"
	"github.com/mhoudali/interim_app/internal/logging"
	"github.com/mhoudali/interim_app/internal/models"
	"github.com/mhoudali/interim_app/internal/mykafka"
	"github.com/mhoudali/interim_app/internal/repo"
)

type JobService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

type CreateJobInput struct {
	Title              string
	Description        string
	Salary             *float64
	ContractType       string
	Location           string
	RequiredSkills     []string
	RequiredExperience string
}

type UpdateJobInput struct {
	Title              *string
	Description        *string
	Salary             *float64
	ContractType       *string
	Location           *string
	RequiredSkills     *[]string
	RequiredExperience *string
	Active             *bool
}

func (s *JobService) List(ctx context.Context, f repo.JobFilter, offset, limit int) (int64, []models.Job, error) {
	return s.Repo.ListJobs(ctx, f, offset, limit)
}

// Get returns the job and, when it still resolves, its owning company.
func (s *JobService) Get(ctx context.Context, id string) (*models.Job, *models.Company, error) {
	job, err := s.Repo.GetJob(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	company, err := s.Repo.GetCompany(ctx, job.CompanyID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return job, nil, nil
		}
		return nil, nil, err
	}

	return job, company, nil
}

func (s *JobService) Create(ctx context.Context, companyID string, in CreateJobInput) (*models.Job, error) {
	l := logging.FromContext(ctx).With("svc", "jobs.create", "company_id", companyID)

	if err := requireField("titre", in.Title); err != nil {
		return nil, err
	}
	if err := requireField("description", in.Description); err != nil {
		return nil, err
	}

	contract := in.ContractType
	if contract == "" {
		contract = "CDI"
	}

	job := models.Job{
		CompanyID:          companyID,
		Title:              in.Title,
		Description:        in.Description,
		Salary:             in.Salary,
		ContractType:       contract,
		Location:           in.Location,
		RequiredSkills:     in.RequiredSkills,
		RequiredExperience: in.RequiredExperience,
		Active:             true,
	}
	if job.RequiredSkills == nil {
		job.RequiredSkills = []string{}
	}

	if err := s.Repo.CreateJob(ctx, &job); err != nil {
		l.Error("create_failed", "error", err)
		return nil, err
	}

	publishEvent(ctx, s.Producer, "job_events", job.ID, map[string]interface{}{
		"type":       "job_created",
		"job_id":     job.ID,
		"company_id": companyID,
		"titre":      job.Title,
	})

	l.Info("create_success", "job_id", job.ID)
	return &job, nil
}

func (s *JobService) Update(ctx context.Context, id string, in UpdateJobInput) (*models.Job, error) {
	job, err := s.Repo.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		job.Title = *in.Title
	}
	if in.Description != nil {
		job.Description = *in.Description
	}
	if in.Salary != nil {
		job.Salary = in.Salary
	}
	if in.ContractType != nil {
		job.ContractType = *in.ContractType
	}
	if in.Location != nil {
		job.Location = *in.Location
	}
	if in.RequiredSkills != nil {
		job.RequiredSkills = *in.RequiredSkills
	}
	if in.RequiredExperience != nil {
		job.RequiredExperience = *in.RequiredExperience
	}
	if in.Active != nil {
		job.Active = *in.Active
	}
	job.UpdatedAt = time.Now().UTC()

	if err := s.Repo.SaveJob(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

func (s *JobService) Delete(ctx context.Context, id string) error {
	return s.Repo.DeleteJob(ctx, id)
}

// Deactivate soft-deletes: the job stops matching searches and refuses
// new applications but stays readable.
func (s *JobService) Deactivate(ctx context.Context, id string) error {
	return s.Repo.DeactivateJob(ctx, id)
}

func (s *JobService) Applications(ctx context.Context, jobID string, offset, limit int) (int64, []models.Application, error) {
	return s.Repo.ListApplications(ctx, repo.ApplicationFilter{JobID: jobID}, offset, limit)
}
