package repo

import (
	"context"

	"github.com/mhoudali/interim_app/internal/apperr"
	"github.com/mhoudali/interim_app/internal/models"
)

func (r *GormRepo) CreateCompany(ctx context.Context, c *models.Company) error {
	return translate(r.DB.WithContext(ctx).Create(c).Error)
}

func (r *GormRepo) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	var company models.Company
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&company).Error; err != nil {
		return nil, translate(err)
	}
	return &company, nil
}

func (r *GormRepo) GetCompanyByEmail(ctx context.Context, email string) (*models.Company, error) {
	var company models.Company
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&company).Error; err != nil {
		return nil, translate(err)
	}
	return &company, nil
}

func (r *GormRepo) ListCompanies(ctx context.Context, offset, limit int) (int64, []models.Company, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Company{}).Count(&total).Error; err != nil {
		return 0, nil, translate(err)
	}

	var items []models.Company
	if err := r.DB.WithContext(ctx).Model(&models.Company{}).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, translate(err)
	}

	return total, items, nil
}

func (r *GormRepo) SaveCompany(ctx context.Context, c *models.Company) error {
	return translate(r.DB.WithContext(ctx).Save(c).Error)
}

func (r *GormRepo) DeleteCompany(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.Company{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
