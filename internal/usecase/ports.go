package usecase

import (
	"context"
	"time"

	"github.com/fadilmartias/talent-pipeline/internal/model"
	"github.com/fadilmartias/talent-pipeline/internal/repository"
	"github.com/pgvector/pgvector-go"
)

type JobStore interface {
	CreateJob(ctx context.Context, job *model.Job) error
	FindJobByID(ctx context.Context, id string) (*model.Job, error)
	GetJobs(ctx context.Context, f repository.JobFilter) ([]model.Job, error)
	UpdateStages(ctx context.Context, id string, stages []string) error
	UpdateEmbedding(ctx context.Context, id string, embedding pgvector.Vector) error
	SearchJobs(ctx context.Context, embedding pgvector.Vector, topK int) ([]model.Job, error)
}

type CompanyStore interface {
	CreateCompany(ctx context.Context, c *model.Company) error
	FindCompanyByID(ctx context.Context, id string) (*model.Company, error)
	GetCompanies(ctx context.Context, ownerID string) ([]model.Company, error)
	UpdateCompany(ctx context.Context, c *model.Company) error
}

type ApplicationStore interface {
	Create(ctx context.Context, app *model.Application) error
	FindByID(ctx context.Context, id string) (*model.Application, error)
	FindByJob(ctx context.Context, jobID string) ([]model.Application, error)
	FindByCandidate(ctx context.Context, candidateID, email string) ([]model.Application, error)
	SetStage(ctx context.Context, id, stage, source, actorID string) error
	Delete(ctx context.Context, id string) error
	Transitions(ctx context.Context, id string) ([]model.StageTransition, error)
}

type ProfileStore interface {
	FindByID(ctx context.Context, userID string) (*model.Profile, error)
	Upsert(ctx context.Context, p *model.Profile) error
}

type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	SignedURL(key string, ttl time.Duration) (string, error)
}

type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// ResumeFile is an uploaded resume.
type ResumeFile struct {
	Filename string
	Data     []byte
}

// TextExtractor turns a resume file into plain text.
type TextExtractor func(filename string, data []byte) (string, error)
