package repository

import (
	"context"
	"strings"

	"github.com/fadilmartias/talent-pipeline/internal/model"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db}
}

// SearchJobs returns the topK embedded jobs closest to embedding.
func (r *JobRepository) SearchJobs(ctx context.Context, embedding pgvector.Vector, topK int) ([]model.Job, error) {
	var jobs []model.Job

	// <=> is cosine distance
	err := r.db.WithContext(ctx).Raw(`
        SELECT *
        FROM jobs
        WHERE embedding IS NOT NULL
        ORDER BY embedding <=> ?
        LIMIT ?
    `, embedding, topK).Scan(&jobs).Error

	return jobs, err
}

func (r *JobRepository) CreateJob(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *JobRepository) UpdateStages(ctx context.Context, id string, stages []string) error {
	res := r.db.WithContext(ctx).Model(&model.Job{}).
		Where("id = ?", id).
		Update("stages", pq.StringArray(stages))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *JobRepository) UpdateEmbedding(ctx context.Context, id string, embedding pgvector.Vector) error {
	return r.db.WithContext(ctx).Model(&model.Job{}).
		Where("id = ?", id).
		Update("embedding", embedding).Error
}

func (r *JobRepository) FindJobByID(ctx context.Context, id string) (*model.Job, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var j model.Job
	err := r.db.WithContext(ctx).Omit("embedding").First(&j, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &j, nil
}

// JobFilter narrows GetJobs. Query matches title or description, or the
// company name when ByCompany is set.
type JobFilter struct {
	RecruiterID string
	CompanyID   string
	Query       string
	ByCompany   bool
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GetJobs lists jobs matching f, newest first.
func (r *JobRepository) GetJobs(ctx context.Context, f JobFilter) ([]model.Job, error) {
	var jobs []model.Job
	q := r.db.WithContext(ctx).Omit("embedding").Order("created_at DESC")
	if f.RecruiterID != "" {
		q = q.Where("recruiter_id = ?", f.RecruiterID)
	}
	if f.CompanyID != "" {
		if err := checkID(f.CompanyID); err != nil {
			return nil, nil
		}
		q = q.Where("company_id = ?", f.CompanyID)
	}
	if term := strings.TrimSpace(f.Query); term != "" {
		pattern := "%" + likeEscaper.Replace(term) + "%"
		if f.ByCompany {
			names := r.db.Model(&model.Company{}).Select("id").Where("name ILIKE ?", pattern)
			q = q.Where("(company ILIKE ? OR company_id IN (?))", pattern, names)
		} else {
			q = q.Where("(title ILIKE ? OR description ILIKE ?)", pattern, pattern)
		}
	}
	err := q.Find(&jobs).Error
	return jobs, err
}
