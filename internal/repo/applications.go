package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/mhoudali/interim_app/internal/apperr"
	"github.com/mhoudali/interim_app/internal/models"
)

// ApplicationFilter scopes listings to a participant. Empty fields are
// ignored; set fields combine conjunctively.
type ApplicationFilter struct {
	UserID    string
	CompanyID string
	JobID     string
	Status    string
}

func (f ApplicationFilter) scope(q *gorm.DB) *gorm.DB {
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.CompanyID != "" {
		q = q.Where("company_id = ?", f.CompanyID)
	}
	if f.JobID != "" {
		q = q.Where("job_id = ?", f.JobID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

func (r *GormRepo) CreateApplication(ctx context.Context, a *models.Application) error {
	return translate(r.DB.WithContext(ctx).Create(a).Error)
}

func (r *GormRepo) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&app).Error; err != nil {
		return nil, translate(err)
	}
	return &app, nil
}

func (r *GormRepo) ApplicationExists(ctx context.Context, userID, jobID string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Application{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (r *GormRepo) ListApplications(ctx context.Context, f ApplicationFilter, offset, limit int) (int64, []models.Application, error) {
	var total int64
	if err := f.scope(r.DB.WithContext(ctx).Model(&models.Application{})).
		Count(&total).Error; err != nil {
		return 0, nil, translate(err)
	}

	var items []models.Application
	if err := f.scope(r.DB.WithContext(ctx).Model(&models.Application{})).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, translate(err)
	}

	return total, items, nil
}

func (r *GormRepo) CountApplications(ctx context.Context, f ApplicationFilter) (int64, error) {
	var count int64
	if err := f.scope(r.DB.WithContext(ctx).Model(&models.Application{})).
		Count(&count).Error; err != nil {
		return 0, translate(err)
	}
	return count, nil
}

func (r *GormRepo) SaveApplication(ctx context.Context, a *models.Application) error {
	return translate(r.DB.WithContext(ctx).Save(a).Error)
}

func (r *GormRepo) DeleteApplication(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.Application{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
