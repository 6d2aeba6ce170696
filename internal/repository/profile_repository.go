package repository

import (
	"context"

	"github.com/fadilmartias/talent-pipeline/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db}
}

func (r *ProfileRepository) FindByID(ctx context.Context, userID string) (*model.Profile, error) {
	var p model.Profile
	err := r.db.WithContext(ctx).First(&p, "id = ?", userID).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// Upsert inserts the profile or overwrites every column of an existing one.
func (r *ProfileRepository) Upsert(ctx context.Context, p *model.Profile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(p).Error
}
