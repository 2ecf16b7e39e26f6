package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/mhoudali/interim_app/internal/apperr"
	"github.com/mhoudali/interim_app/internal/models"
)

// JobFilter is the search surface over active jobs. Query matches
// title, description or skills; all filters combine conjunctively.
type JobFilter struct {
	Query        string
	Location     string
	ContractType string
}

func (f JobFilter) scope(q *gorm.DB) *gorm.DB {
	q = q.Where("active = ?", true)
	if f.Query != "" {
		like := "%" + strings.ToLower(f.Query) + "%"
		q = q.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(required_skills) LIKE ?",
			like, like, like,
		)
	}
	if f.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(f.Location)+"%")
	}
	if f.ContractType != "" {
		q = q.Where("contract_type = ?", f.ContractType)
	}
	return q
}

func (r *GormRepo) CreateJob(ctx context.Context, j *models.Job) error {
	return translate(r.DB.WithContext(ctx).Create(j).Error)
}

func (r *GormRepo) GetJob(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		return nil, translate(err)
	}
	return &job, nil
}

func (r *GormRepo) ListJobs(ctx context.Context, f JobFilter, offset, limit int) (int64, []models.Job, error) {
	var total int64
	if err := f.scope(r.DB.WithContext(ctx).Model(&models.Job{})).
		Count(&total).Error; err != nil {
		return 0, nil, translate(err)
	}

	var items []models.Job
	if err := f.scope(r.DB.WithContext(ctx).Model(&models.Job{})).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, translate(err)
	}

	return total, items, nil
}

func (r *GormRepo) ListJobsByCompany(ctx context.Context, companyID string, offset, limit int) (int64, []models.Job, error) {
	base := r.DB.WithContext(ctx).Model(&models.Job{}).Where("company_id = ?", companyID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, nil, translate(err)
	}

	var items []models.Job
	if err := base.Session(&gorm.Session{}).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, translate(err)
	}

	return total, items, nil
}

func (r *GormRepo) SaveJob(ctx context.Context, j *models.Job) error {
	return translate(r.DB.WithContext(ctx).Save(j).Error)
}

func (r *GormRepo) DeleteJob(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.Job{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *GormRepo) DeactivateJob(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Model(&models.Job{}).
		Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *GormRepo) SetJobApplicationCount(ctx context.Context, jobID string, count int64) error {
	return translate(r.DB.WithContext(ctx).Model(&models.Job{}).
		Where("id = ?", jobID).Update("application_count", count).Error)
}
