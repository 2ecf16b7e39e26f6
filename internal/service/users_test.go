package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mhoudali/interim_app/internal/apperr"
)

func TestUpdateUser(t *testing.T) {
	rp := initTestRepo(t)
	svc := &UserService{Repo: rp}
	userID := registerTestUser(t, rp, "jean@example.com")

	phone := "0612345678"
	skills := []string{"Python", "Go"}
	user, err := svc.Update(context.Background(), userID, UpdateUserInput{Phone: &phone, Skills: &skills})
	require.NoError(t, err)
	require.Equal(t, "0612345678", user.Phone)
	require.Equal(t, skills, user.Skills)
	require.Equal(t, "Dupont", user.LastName, "untouched fields keep their value")

	short := "abc"
	_, err = svc.Update(context.Background(), userID, UpdateUserInput{Password: &short})
	require.ErrorIs(t, err, apperr.ErrInvalidArgument)

	newPw := "nouveau-mdp"
	_, err = svc.Update(context.Background(), userID, UpdateUserInput{Password: &newPw})
	require.NoError(t, err)
	_, err = newAuthService(rp).Login(context.Background(), "jean@example.com", "nouveau-mdp")
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), "absent", UpdateUserInput{Phone: &phone})
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUserProfile(t *testing.T) {
	rp := initTestRepo(t)
	svc := &UserService{Repo: rp}

	companyID := registerTestCompany(t, rp, "contact@techcorp.fr")
	userID := registerTestUser(t, rp, "jean@example.com")
	job := createTestJob(t, rp, companyID, CreateJobInput{Title: "Poste", Description: "desc"})

	user, count, err := svc.Profile(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, "jean@example.com", user.Email)
	require.Zero(t, count)

	_, err = (&ApplicationService{Repo: rp}).Create(context.Background(), userID, job.ID, "")
	require.NoError(t, err)

	_, count, err = svc.Profile(context.Background(), userID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestListUsers(t *testing.T) {
	rp := initTestRepo(t)
	svc := &UserService{Repo: rp}

	registerTestUser(t, rp, "jean@example.com")
	registerTestUser(t, rp, "marie@example.com")

	total, users, err := svc.List(context.Background(), 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, users, 2)
}

func TestDeleteUser(t *testing.T) {
	rp := initTestRepo(t)
	svc := &UserService{Repo: rp}
	userID := registerTestUser(t, rp, "jean@example.com")

	require.NoError(t, svc.Delete(context.Background(), userID))
	_, err := svc.Get(context.Background(), userID)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	require.ErrorIs(t, svc.Delete(context.Background(), userID), apperr.ErrNotFound)
}

func TestCompanyProfileAndJobs(t *testing.T) {
	rp := initTestRepo(t)
	svc := &CompanyService{Repo: rp}

	companyID := registerTestCompany(t, rp, "contact@techcorp.fr")
	createTestJob(t, rp, companyID, CreateJobInput{Title: "Poste 1", Description: "desc"})
	createTestJob(t, rp, companyID, CreateJobInput{Title: "Poste 2", Description: "desc"})

	company, count, err := svc.Profile(context.Background(), companyID)
	require.NoError(t, err)
	require.Equal(t, "TechCorp", company.Name)
	require.EqualValues(t, 2, count)

	total, jobs, err := svc.Jobs(context.Background(), companyID, 0, 1)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, jobs, 1)

	_, _, err = svc.Jobs(context.Background(), "absent", 0, 10)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
