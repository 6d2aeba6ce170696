package repository

import (
	"context"
	"time"

	"github.com/fadilmartias/talent-pipeline/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db}
}

func (r *ApplicationRepository) Create(ctx context.Context, app *model.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*model.Application, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var app model.Application
	err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &app, nil
}

// FindByJob returns all applications of a job in submission order.
func (r *ApplicationRepository) FindByJob(ctx context.Context, jobID string) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Omit("resume_text").
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&apps).Error
	return apps, err
}

// FindByCandidate returns a candidate's applications, newest first.
func (r *ApplicationRepository) FindByCandidate(ctx context.Context, candidateID, email string) ([]model.Application, error) {
	var apps []model.Application
	err := r.db.WithContext(ctx).
		Omit("resume_text").
		Where("candidate_id = ? OR LOWER(candidate_email) = LOWER(?)", candidateID, email).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

// SetStage updates the application's stage and records the transition in
// the same transaction.
func (r *ApplicationRepository) SetStage(ctx context.Context, id, stage, source, actorID string) error {
	if err := checkID(id); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var app model.Application
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "job_id", "stage").
			First(&app, "id = ?", id).Error
		if err != nil {
			return notFound(err)
		}

		if err := tx.Model(&model.Application{}).
			Where("id = ?", id).
			Updates(map[string]any{"stage": stage, "updated_at": time.Now()}).Error; err != nil {
			return err
		}

		return tx.Create(&model.StageTransition{
			ApplicationID: app.ID,
			JobID:         app.JobID,
			FromStage:     app.Stage,
			ToStage:       stage,
			Source:        source,
			ActorID:       actorID,
		}).Error
	})
}

func (r *ApplicationRepository) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Delete(&model.Application{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Transitions returns an application's stage history, oldest first.
func (r *ApplicationRepository) Transitions(ctx context.Context, id string) ([]model.StageTransition, error) {
	var rows []model.StageTransition
	appID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	err = r.db.WithContext(ctx).
		Where("application_id = ?", appID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}
