package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mhoudali/interim_app/internal/apperr"
	"github.com/mhoudali/interim_app/internal/logging"
	"github.com/mhoudali/interim_app/internal/models"
	"github.com/mhoudali/interim_app/internal/mykafka"
	"github.com/mhoudali/interim_app/internal/repo"
)

// ApplicationService owns the application lifecycle and keeps
// job.candidatures_count consistent with the applications table.
type ApplicationService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

type ApplicationStats struct {
	Total    int64 `json:"total_applications"`
	Pending  int64 `json:"en_attente"`
	Accepted int64 `json:"acceptees"`
	Rejected int64 `json:"refusees"`
}

func (s *ApplicationService) Create(ctx context.Context, userID, jobID, coverLetter string) (*models.Application, error) {
	l := logging.FromContext(ctx).With("svc", "applications.create", "job_id", jobID)

	if err := requireField("job_id", jobID); err != nil {
		return nil, err
	}

	job, err := s.Repo.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("Offre d'emploi non trouvée: %w", apperr.ErrNotFound)
		}
		return nil, err
	}
	if !job.Active {
		l.Warn("create_failed", "status", 400, "reason", "job inactive")
		return nil, fmt.Errorf("Cette offre d'emploi n'est plus active: %w", apperr.ErrInvalidState)
	}

	// Friendly duplicate check; the composite unique index on
	// (user_id, job_id) is what actually holds under concurrency.
	exists, err := s.Repo.ApplicationExists(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}
	if exists {
		l.Warn("create_failed", "status", 409, "reason", "already applied")
		return nil, fmt.Errorf("Vous avez déjà postulé à cette offre: %w", apperr.ErrConflict)
	}

	app := models.Application{
		UserID:      userID,
		JobID:       jobID,
		CompanyID:   job.CompanyID,
		CoverLetter: coverLetter,
		Status:      models.StatusPending,
	}

	if err := s.Repo.CreateApplication(ctx, &app); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			// Lost the race to a concurrent apply; same answer.
			l.Warn("create_failed", "status", 409, "reason", "already applied")
			return nil, fmt.Errorf("Vous avez déjà postulé à cette offre: %w", apperr.ErrConflict)
		}
		l.Error("create_failed", "error", err)
		return nil, err
	}

	s.recountJob(ctx, jobID)

	publishEvent(ctx, s.Producer, "application_events", app.ID, map[string]interface{}{
		"type":           "application_created",
		"application_id": app.ID,
		"job_id":         jobID,
		"user_id":        userID,
	})

	l.Info("create_success", "application_id", app.ID)
	return &app, nil
}

func (s *ApplicationService) Get(ctx context.Context, id string) (*models.Application, error) {
	return s.Repo.GetApplication(ctx, id)
}

func (s *ApplicationService) List(ctx context.Context, f repo.ApplicationFilter, offset, limit int) (int64, []models.Application, error) {
	return s.Repo.ListApplications(ctx, f, offset, limit)
}

func (s *ApplicationService) UpdateCoverLetter(ctx context.Context, id, coverLetter string) (*models.Application, error) {
	app, err := s.Repo.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	app.CoverLetter = coverLetter
	app.UpdatedAt = time.Now().UTC()

	if err := s.Repo.SaveApplication(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	l := logging.FromContext(ctx).With("svc", "applications.delete", "application_id", id)

	app, err := s.Repo.GetApplication(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Repo.DeleteApplication(ctx, id); err != nil {
		return err
	}

	// The delete already succeeded; the counter is advisory.
	s.recountJob(ctx, app.JobID)

	l.Info("delete_success", "job_id", app.JobID)
	return nil
}

func (s *ApplicationService) UpdateStatus(ctx context.Context, id, status, notes string) (*models.Application, error) {
	l := logging.FromContext(ctx).With("svc", "applications.update_status", "application_id", id)

	if err := requireField("statut", status); err != nil {
		return nil, err
	}
	if !models.ValidStatus(status) {
		l.Warn("update_status_failed", "status", 400, "reason", "invalid status", "statut", status)
		return nil, fmt.Errorf("Statut invalide: %w", apperr.ErrInvalidArgument)
	}

	app, err := s.Repo.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	app.Status = status
	if notes != "" {
		app.CompanyNotes = notes
	}
	app.UpdatedAt = time.Now().UTC()

	if err := s.Repo.SaveApplication(ctx, app); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.Producer, "application_events", app.ID, map[string]interface{}{
		"type":           "application_status_changed",
		"application_id": app.ID,
		"statut":         status,
	})

	l.Info("update_status_success", "statut", status)
	return app, nil
}

// Statistics aggregates the caller's applications by status: a user sees
// their own, a company sees its incoming ones.
func (s *ApplicationService) Statistics(ctx context.Context, principalID, kind string) (*ApplicationStats, error) {
	f := repo.ApplicationFilter{}
	switch kind {
	case models.KindUser:
		f.UserID = principalID
	case models.KindCompany:
		f.CompanyID = principalID
	}

	stats := &ApplicationStats{}
	var err error
	if stats.Total, err = s.Repo.CountApplications(ctx, f); err != nil {
		return nil, err
	}

	f.Status = models.StatusPending
	if stats.Pending, err = s.Repo.CountApplications(ctx, f); err != nil {
		return nil, err
	}
	f.Status = models.StatusAccepted
	if stats.Accepted, err = s.Repo.CountApplications(ctx, f); err != nil {
		return nil, err
	}
	f.Status = models.StatusRejected
	if stats.Rejected, err = s.Repo.CountApplications(ctx, f); err != nil {
		return nil, err
	}

	return stats, nil
}

// recountJob recomputes the derived counter from scratch. A full recount
// tolerates interleaved create/delete without drift, where a plain
// increment would not.
func (s *ApplicationService) recountJob(ctx context.Context, jobID string) {
	count, err := s.Repo.CountApplications(ctx, repo.ApplicationFilter{JobID: jobID})
	if err != nil {
		logging.FromContext(ctx).Error("recount_failed", "job_id", jobID, "error", err)
		return
	}
	if err := s.Repo.SetJobApplicationCount(ctx, jobID, count); err != nil {
		logging.FromContext(ctx).Error("recount_failed", "job_id", jobID, "error", err)
	}
}
