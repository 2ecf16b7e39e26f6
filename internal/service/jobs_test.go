package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mhoudali/interim_app/internal/apperr"
	"github.com/mhoudali/interim_app/internal/repo"
)

func TestCreateJob(t *testing.T) {
	rp := initTestRepo(t)
	svc := &JobService{Repo: rp}
	companyID := registerTestCompany(t, rp, "contact@techcorp.fr")

	_, err := svc.Create(context.Background(), companyID, CreateJobInput{Description: "desc"})
	require.ErrorIs(t, err, apperr.ErrInvalidArgument)

	salary := 45000.0
	job, err := svc.Create(context.Background(), companyID, CreateJobInput{
		Title:          "Développeur Python",
		Description:    "Backend Flask",
		Salary:         &salary,
		Location:       "Paris",
		RequiredSkills: []string{"Python", "Flask"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, job.ID)
	require.Equal(t, companyID, job.CompanyID)
	require.Equal(t, "CDI", job.ContractType, "contract type defaults to CDI")
	require.True(t, job.Active)
	require.Zero(t, job.ApplicationCount)
}

func TestGetJob_WithCompany(t *testing.T) {
	rp := initTestRepo(t)
	svc := &JobService{Repo: rp}
	companyID := registerTestCompany(t, rp, "contact@techcorp.fr")
	created := createTestJob(t, rp, companyID, CreateJobInput{Title: "Développeur Go", Description: "API"})

	job, company, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, job.ID)
	require.NotNil(t, company)
	require.Equal(t, "TechCorp", company.Name)

	_, _, err = svc.Get(context.Background(), "absent")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListJobs_Filters(t *testing.T) {
	rp := initTestRepo(t)
	svc := &JobService{Repo: rp}
	companyID := registerTestCompany(t, rp, "contact@techcorp.fr")

	createTestJob(t, rp, companyID, CreateJobInput{
		Title: "Développeur Python", Description: "Backend", Location: "Paris", ContractType: "CDI",
		RequiredSkills: []string{"Python", "Docker"},
	})
	createTestJob(t, rp, companyID, CreateJobInput{
		Title: "Développeur Go", Description: "API", Location: "Lyon", ContractType: "CDD",
	})
	inactive := createTestJob(t, rp, companyID, CreateJobInput{
		Title: "Ancien poste Python", Description: "Archives", Location: "Paris",
	})
	require.NoError(t, svc.Deactivate(context.Background(), inactive.ID))

	// Deactivated jobs drop out of every listing.
	total, jobs, err := svc.List(context.Background(), repo.JobFilter{}, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, jobs, 2)

	total, jobs, err = svc.List(context.Background(), repo.JobFilter{Query: "python"}, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "Développeur Python", jobs[0].Title)

	// The text search also covers required skills.
	total, _, err = svc.List(context.Background(), repo.JobFilter{Query: "docker"}, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)

	total, jobs, err = svc.List(context.Background(), repo.JobFilter{Location: "Lyon", ContractType: "CDD"}, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "Développeur Go", jobs[0].Title)

	total, _, err = svc.List(context.Background(), repo.JobFilter{Location: "Paris", ContractType: "CDD"}, 0, 10)
	require.NoError(t, err)
	require.Zero(t, total)
}

func TestListJobs_Pagination(t *testing.T) {
	rp := initTestRepo(t)
	svc := &JobService{Repo: rp}
	companyID := registerTestCompany(t, rp, "contact@techcorp.fr")

	for i := 0; i < 15; i++ {
		createTestJob(t, rp, companyID, CreateJobInput{
			Title:       fmt.Sprintf("Poste %d", i),
			Description: "desc",
		})
	}

	total, jobs, err := svc.List(context.Background(), repo.JobFilter{}, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 15, total)
	require.Len(t, jobs, 10)

	total, jobs, err = svc.List(context.Background(), repo.JobFilter{}, 10, 10)
	require.NoError(t, err)
	require.EqualValues(t, 15, total)
	require.Len(t, jobs, 5)
}

func TestUpdateJob(t *testing.T) {
	rp := initTestRepo(t)
	svc := &JobService{Repo: rp}
	companyID := registerTestCompany(t, rp, "contact@techcorp.fr")
	created := createTestJob(t, rp, companyID, CreateJobInput{Title: "Développeur Go", Description: "API", Location: "Lyon"})

	title := "Développeur Go senior"
	active := false
	job, err := svc.Update(context.Background(), created.ID, UpdateJobInput{Title: &title, Active: &active})
	require.NoError(t, err)
	require.Equal(t, "Développeur Go senior", job.Title)
	require.False(t, job.Active)
	require.Equal(t, "Lyon", job.Location, "untouched fields keep their value")

	_, err = svc.Update(context.Background(), "absent", UpdateJobInput{Title: &title})
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteJob(t *testing.T) {
	rp := initTestRepo(t)
	svc := &JobService{Repo: rp}
	companyID := registerTestCompany(t, rp, "contact@techcorp.fr")
	created := createTestJob(t, rp, companyID, CreateJobInput{Title: "Développeur Go", Description: "API"})

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	_, _, err := svc.Get(context.Background(), created.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	require.ErrorIs(t, svc.Delete(context.Background(), created.ID), apperr.ErrNotFound)
}
