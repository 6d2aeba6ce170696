package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/fadilmartias/talent-pipeline/internal/auth"
	"github.com/fadilmartias/talent-pipeline/internal/config"
	"github.com/fadilmartias/talent-pipeline/internal/dto"
	"github.com/fadilmartias/talent-pipeline/internal/model"
	"github.com/fadilmartias/talent-pipeline/internal/pipeline"
	"github.com/fadilmartias/talent-pipeline/internal/repository"
	"github.com/fadilmartias/talent-pipeline/internal/response"
	"github.com/fadilmartias/talent-pipeline/internal/util"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

const (
	defaultRecommendLimit = 5
	maxRecommendLimit     = 20
)

type JobUsecase struct {
	jobs      JobStore
	profiles  ProfileStore
	companies CompanyStore
	embedder  Embedder
	presets   *config.PipelineConfig
}

// NewJobUsecase wires the job use cases. A nil embedder disables
// recommendations; jobs are then stored without embeddings.
func NewJobUsecase(jobs JobStore, profiles ProfileStore, embedder Embedder, presets *config.PipelineConfig) *JobUsecase {
	if presets == nil {
		presets = config.LoadPipelineConfigDefaults()
	}
	return &JobUsecase{jobs: jobs, profiles: profiles, embedder: embedder, presets: presets}
}

// WithCompanies lets jobs link to a company page.
func (uc *JobUsecase) WithCompanies(companies CompanyStore) *JobUsecase {
	uc.companies = companies
	return uc
}

func (uc *JobUsecase) CreateJob(ctx context.Context, id *auth.Identity, req dto.CreateJobRequest) (*dto.JobDTO, error) {
	if err := requireRecruiter(id); err != nil {
		return nil, err
	}

	errs := map[string]string{}
	if strings.TrimSpace(req.Title) == "" {
		errs["title"] = "title is required"
	}
	if strings.TrimSpace(req.Description) == "" {
		errs["description"] = "description is required"
	}
	if len(errs) > 0 {
		return nil, util.NewFormError("missing required fields", errs)
	}
	company, err := uc.ownCompany(ctx, id, req.CompanyID)
	if err != nil {
		return nil, err
	}

	stages := pipeline.Stages(req.Stages).Normalize()
	if len(stages) == 0 {
		stages = uc.presets.Stages().OrDefault()
	}
	job := &model.Job{
		ID:           uuid.New(),
		RecruiterID:  id.UserID,
		Title:        strings.TrimSpace(req.Title),
		Company:      strings.TrimSpace(req.Company),
		Location:     strings.TrimSpace(req.Location),
		Description:  strings.TrimSpace(req.Description),
		Requirements: splitList(req.Requirements),
		Stages:       []string(stages),
	}
	if company != nil {
		job.CompanyID = &company.ID
		if job.Company == "" {
			job.Company = company.Name
		}
	}
	if err := uc.jobs.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("save job: %w", err)
	}
	uc.embedJob(ctx, job)

	out := dto.NewJobDTO(job)
	return &out, nil
}

// ownCompany resolves the company a new job links to. It must belong to the
// recruiter posting the job.
func (uc *JobUsecase) ownCompany(ctx context.Context, id *auth.Identity, companyID string) (*model.Company, error) {
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return nil, nil
	}
	invalid := util.NewFormError("invalid company", map[string]string{"company_id": "company not found"})
	if uc.companies == nil {
		return nil, invalid
	}
	company, err := uc.companies.FindCompanyByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalid
		}
		return nil, fmt.Errorf("find company: %w", err)
	}
	if company.OwnerID != id.UserID {
		return nil, ErrForbidden
	}
	return company, nil
}

// embedJob stores the job's embedding for recommendations. Failures leave
// the job unembedded; it simply never shows up in recommendations.
func (uc *JobUsecase) embedJob(ctx context.Context, job *model.Job) {
	if uc.embedder == nil {
		return
	}
	values, err := uc.embedder.GenerateEmbedding(ctx, job.EmbeddingText())
	if err != nil {
		log.Printf("CreateJob: embedding failed for job %s: %v", job.ID, err)
		return
	}
	if err := uc.jobs.UpdateEmbedding(ctx, job.ID.String(), pgvector.NewVector(values)); err != nil {
		log.Printf("CreateJob: could not store embedding for job %s: %v", job.ID, err)
	}
}

// ListJobs pages over open jobs, or over the caller's own postings when
// Mine is set. Query searches title and description, or company names when
// Type is "company".
func (uc *JobUsecase) ListJobs(ctx context.Context, id *auth.Identity, q dto.JobListQuery) (*dto.JobPageDTO, error) {
	filter := repository.JobFilter{
		CompanyID: strings.TrimSpace(q.CompanyID),
		Query:     strings.TrimSpace(q.Query),
	}
	switch q.Type {
	case "", dto.SearchByJob:
	case dto.SearchByCompany:
		filter.ByCompany = true
	default:
		return nil, util.NewFormError("invalid search", map[string]string{"type": `type must be "job" or "company"`})
	}
	if q.Mine {
		if err := requireIdentity(id); err != nil {
			return nil, err
		}
		filter.RecruiterID = id.UserID
	}
	jobs, err := uc.jobs.GetJobs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	p := response.NewPagination(q.Page, q.PageSize, int64(len(jobs)))
	out := make([]dto.JobDTO, 0, p.To-p.From)
	for i := p.From; i < p.To; i++ {
		out = append(out, dto.NewJobDTO(&jobs[i]))
	}
	return &dto.JobPageDTO{Jobs: out, Pagination: p}, nil
}

func (uc *JobUsecase) GetJob(ctx context.Context, jobID string) (*dto.JobDTO, error) {
	job, err := uc.jobs.FindJobByID(ctx, jobID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	out := dto.NewJobDTO(job)
	return &out, nil
}

// EditStages applies one stage list operation. Applications in a removed
// stage stay where they are; the board shows them under the first stage.
func (uc *JobUsecase) EditStages(ctx context.Context, id *auth.Identity, jobID string, req dto.EditStagesRequest) (*dto.JobDTO, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	job, err := uc.jobs.FindJobByID(ctx, jobID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if err := requireJobOwner(id, job); err != nil {
		return nil, err
	}

	next, err := uc.applyStageOp(pipeline.Stages(job.Stages).Normalize(), req)
	if err != nil {
		return nil, err
	}
	if len(next) == 0 {
		return nil, util.NewFormError("invalid stages", map[string]string{"stages": "a job needs at least one stage"})
	}
	if err := uc.jobs.UpdateStages(ctx, jobID, next); err != nil {
		return nil, mapStoreErr(err)
	}

	job.Stages = []string(next)
	out := dto.NewJobDTO(job)
	return &out, nil
}

func (uc *JobUsecase) applyStageOp(current pipeline.Stages, req dto.EditStagesRequest) (pipeline.Stages, error) {
	name := strings.TrimSpace(req.Name)
	switch strings.ToLower(strings.TrimSpace(req.Op)) {
	case dto.StageOpAppend:
		if name == "" {
			return nil, util.NewFormError("invalid stage", map[string]string{"name": "stage name is required"})
		}
		return current.Append(name), nil
	case dto.StageOpRemoveAt:
		if req.Index == nil {
			return nil, util.NewFormError("invalid stage", map[string]string{"index": "index is required"})
		}
		next, err := current.RemoveAt(*req.Index)
		if err != nil {
			return nil, util.NewFormError("invalid stage", map[string]string{"index": err.Error()})
		}
		return next, nil
	case dto.StageOpInsertBefore:
		if name == "" {
			return nil, util.NewFormError("invalid stage", map[string]string{"name": "stage name is required"})
		}
		return current.InsertBefore(strings.TrimSpace(req.Target), name), nil
	case dto.StageOpQuickAdd:
		if name == "" {
			return nil, util.NewFormError("invalid stage", map[string]string{"name": "stage name is required"})
		}
		return current.QuickAdd(name, uc.presets.OfferStage), nil
	case dto.StageOpReplace:
		return pipeline.Stages(req.Stages).Normalize(), nil
	}
	return nil, util.NewFormError("invalid stage", map[string]string{"op": fmt.Sprintf("unknown operation %q", req.Op)})
}

func (uc *JobUsecase) StagePresets() dto.StagePresetsDTO {
	return dto.StagePresetsDTO{
		Default:    []string(uc.presets.Stages().OrDefault()),
		QuickAdd:   append([]string{}, uc.presets.QuickAdd...),
		OfferStage: uc.presets.OfferStage,
	}
}

// RecommendJobs finds the jobs closest to a resume. Without resume text the
// caller's saved profile is used.
func (uc *JobUsecase) RecommendJobs(ctx context.Context, id *auth.Identity, req dto.RecommendJobsRequest) ([]dto.JobDTO, error) {
	if uc.embedder == nil {
		return nil, ErrUnavailable
	}
	text := strings.TrimSpace(req.ResumeText)
	if text == "" {
		var err error
		if text, err = profileText(ctx, uc.profiles, id); err != nil {
			return nil, err
		}
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultRecommendLimit
	}
	if limit > maxRecommendLimit {
		limit = maxRecommendLimit
	}

	values, err := uc.embedder.GenerateEmbedding(ctx, text)
	if err != nil {
		log.Printf("RecommendJobs: embedding failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	jobs, err := uc.jobs.SearchJobs(ctx, pgvector.NewVector(values), limit)
	if err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	out := make([]dto.JobDTO, 0, len(jobs))
	for i := range jobs {
		out = append(out, dto.NewJobDTO(&jobs[i]))
	}
	return out, nil
}
