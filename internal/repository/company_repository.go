package repository

import (
	"context"
	"time"

	"github.com/fadilmartias/talent-pipeline/internal/model"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db}
}

func (r *CompanyRepository) CreateCompany(ctx context.Context, c *model.Company) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CompanyRepository) FindCompanyByID(ctx context.Context, id string) (*model.Company, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var c model.Company
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// GetCompanies returns the owner's companies, newest first.
func (r *CompanyRepository) GetCompanies(ctx context.Context, ownerID string) ([]model.Company, error) {
	var out []model.Company
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// UpdateCompany saves the editable fields of c.
func (r *CompanyRepository) UpdateCompany(ctx context.Context, c *model.Company) error {
	res := r.db.WithContext(ctx).Model(&model.Company{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"name":         c.Name,
			"description":  c.Description,
			"website":      c.Website,
			"logo_url":     c.LogoURL,
			"culture_text": c.CultureText,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
