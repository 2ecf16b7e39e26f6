package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mhoudali/interim_app/internal/apperr"
	"github.com/mhoudali/interim_app/internal/models"
	"github.com/mhoudali/interim_app/internal/repo"
)

func TestCreateApplication(t *testing.T) {
	rp := initTestRepo(t)
	svc := &ApplicationService{Repo: rp}

	companyID := registerTestCompany(t, rp, "contact@techcorp.fr")
	userID := registerTestUser(t, rp, "jean@example.com")
	job := createTestJob(t, rp, companyID, CreateJobInput{Title: "Développeur Python", Description: "Backend"})

	app, err := svc.Create(context.Background(), userID, job.ID, "Je suis motivé")
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, app.Status)
	require.Equal(t, companyID, app.CompanyID, "company id is denormalized from the job")
	require.Equal(t, "Je suis motivé", app.CoverLetter)

	got, err := rp.GetJob(context.Background(), job.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, got.ApplicationCount)
}

func TestCreateApplication_Duplicate(t *testing.T) {
	rp := initTestRepo(t)
	svc := &ApplicationService{Repo: rp}

	companyID := registerTestCompany(t, rp, "contact@techcorp.fr")
	userID := registerTestUser(t, rp, "jean@example.com")
	job := createTestJob(t, rp, companyID, CreateJobInput{Title: "Développeur Python", Description: "Backend"})

	_, err := svc.Create(context.Background(), userID, job.ID, "")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), userID, job.ID, "")
	require.ErrorIs(t, err, apperr.ErrConflict)

	got, err := rp.GetJob(context.Background(), job.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, got.ApplicationCount, "rejected duplicate must not bump the counter")

	// A second user is not a duplicate.
	otherID := registerTestUser(t, rp, "marie@example.com")
	_, err = svc.Create(context.Background(), otherID, job.ID, "")
	require.NoError(t, err)

	got, err = rp.GetJob(context.Background(), job.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, got.ApplicationCount)
}

func TestCreateApplication_JobGuards(t *testing.T) {
	rp := initTestRepo(t)
	svc := &ApplicationService{Repo: rp}

	companyID := registerTestCompany(t, rp, "contact@techcorp.fr")
	userID := registerTestUser(t, rp, "jean@example.com")

	_, err := svc.Create(context.Background(), userID, "absent", "")
	require.ErrorIs(t, err, apperr.ErrNotFound)

	job := createTestJob(t, rp, companyID, CreateJobInput{Title: "Développeur Python", Description: "Backend"})
	require.NoError(t, (&JobService{Repo: rp}).Deactivate(context.Background(), job.ID))

	_, err = svc.Create(context.Background(), userID, job.ID, "")
	require.ErrorIs(t, err, apperr.ErrInvalidState)
}

func TestDeleteApplication_Recount(t *testing.T) {
	rp := initTestRepo(t)
	svc := &ApplicationService{Repo: rp}

	companyID := registerTestCompany(t, rp, "contact@techcorp.fr")
	userID := registerTestUser(t, rp, "jean@example.com")
	job := createTestJob(t, rp, companyID, CreateJobInput{Title: "Développeur Python", Description: "Backend"})

	app, err := svc.Create(context.Background(), userID, job.ID, "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), app.ID))

	got, err := rp.GetJob(context.Background(), job.ID)
	require.NoError(t, err)
	require.Zero(t, got.ApplicationCount)

	require.ErrorIs(t, svc.Delete(context.Background(), app.ID), apperr.ErrNotFound)
}

func TestUpdateApplicationStatus(t *testing.T) {
	rp := initTestRepo(t)
	svc := &ApplicationService{Repo: rp}

	companyID := registerTestCompany(t, rp, "contact@techcorp.fr")
	userID := registerTestUser(t, rp, "jean@example.com")
	job := createTestJob(t, rp, companyID, CreateJobInput{Title: "Développeur Python", Description: "Backend"})

	app, err := svc.Create(context.Background(), userID, job.ID, "")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), app.ID, "Embauchée", "")
	require.ErrorIs(t, err, apperr.ErrInvalidArgument)

	stored, err := svc.Get(context.Background(), app.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, stored.Status, "invalid status must leave the record unchanged")

	updated, err := svc.UpdateStatus(context.Background(), app.ID, models.StatusAccepted, "Bon profil")
	require.NoError(t, err)
	require.Equal(t, models.StatusAccepted, updated.Status)
	require.Equal(t, "Bon profil", updated.CompanyNotes)

	// Empty notes keep the previous ones.
	updated, err = svc.UpdateStatus(context.Background(), app.ID, models.StatusRejected, "")
	require.NoError(t, err)
	require.Equal(t, models.StatusRejected, updated.Status)
	require.Equal(t, "Bon profil", updated.CompanyNotes)
}

func TestApplicationStatistics(t *testing.T) {
	rp := initTestRepo(t)
	svc := &ApplicationService{Repo: rp}

	companyID := registerTestCompany(t, rp, "contact@techcorp.fr")
	otherCompanyID := registerTestCompany(t, rp, "contact@autre.fr")
	userID := registerTestUser(t, rp, "jean@example.com")

	job1 := createTestJob(t, rp, companyID, CreateJobInput{Title: "Poste 1", Description: "desc"})
	job2 := createTestJob(t, rp, companyID, CreateJobInput{Title: "Poste 2", Description: "desc"})
	jobOther := createTestJob(t, rp, otherCompanyID, CreateJobInput{Title: "Poste 3", Description: "desc"})

	app1, err := svc.Create(context.Background(), userID, job1.ID, "")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), userID, job2.ID, "")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), userID, jobOther.ID, "")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), app1.ID, models.StatusAccepted, "")
	require.NoError(t, err)

	stats, err := svc.Statistics(context.Background(), userID, models.KindUser)
	require.NoError(t, err)
	require.EqualValues(t, 3, stats.Total)
	require.EqualValues(t, 2, stats.Pending)
	require.EqualValues(t, 1, stats.Accepted)
	require.Zero(t, stats.Rejected)

	stats, err = svc.Statistics(context.Background(), companyID, models.KindCompany)
	require.NoError(t, err)
	require.EqualValues(t, 2, stats.Total)
	require.EqualValues(t, 1, stats.Pending)
	require.EqualValues(t, 1, stats.Accepted)
}

func TestListApplications_Filter(t *testing.T) {
	rp := initTestRepo(t)
	svc := &ApplicationService{Repo: rp}

	companyID := registerTestCompany(t, rp, "contact@techcorp.fr")
	userID := registerTestUser(t, rp, "jean@example.com")
	otherID := registerTestUser(t, rp, "marie@example.com")
	job := createTestJob(t, rp, companyID, CreateJobInput{Title: "Poste", Description: "desc"})

	_, err := svc.Create(context.Background(), userID, job.ID, "")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), otherID, job.ID, "")
	require.NoError(t, err)

	total, apps, err := svc.List(context.Background(), repo.ApplicationFilter{UserID: userID}, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, userID, apps[0].UserID)

	total, _, err = svc.List(context.Background(), repo.ApplicationFilter{JobID: job.ID}, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
}
