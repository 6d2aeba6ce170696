package dto

import (
	"time"

	"github.com/fadilmartias/talent-pipeline/internal/model"
	"github.com/fadilmartias/talent-pipeline/internal/response"
)

type CreateJobRequest struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	CompanyID    string   `json:"company_id"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Requirements string   `json:"requirements"` // comma or newline separated
	Stages       []string `json:"stages"`
}

// Stage list operations.
const (
	StageOpAppend       = "append"
	StageOpRemoveAt     = "remove_at"
	StageOpInsertBefore = "insert_before"
	StageOpQuickAdd     = "quick_add"
	StageOpReplace      = "replace"
)

type EditStagesRequest struct {
	Op     string   `json:"op"`
	Name   string   `json:"name"`
	Index  *int     `json:"index"`
	Target string   `json:"target"`
	Stages []string `json:"stages"`
}

// Job search types for JobListQuery.Type.
const (
	SearchByJob     = "job"
	SearchByCompany = "company"
)

// JobListQuery is the query string of GET /jobs.
type JobListQuery struct {
	Mine      bool   `query:"mine"`
	Query     string `query:"q"`
	Type      string `query:"type"`
	CompanyID string `query:"company_id"`
	Page      int    `query:"page"`
	PageSize  int    `query:"page_size"`
}

type RecommendJobsRequest struct {
	ResumeText string `json:"resume_text"`
	Limit      int    `json:"limit"`
}

type JobDTO struct {
	ID           string    `json:"id"`
	RecruiterID  string    `json:"recruiter_id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	CompanyID    string    `json:"company_id,omitempty"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	Stages       []string  `json:"stages"`
	CreatedAt    time.Time `json:"created_at"`
}

type StagePresetsDTO struct {
	Default    []string `json:"default"`
	QuickAdd   []string `json:"quick_add"`
	OfferStage string   `json:"offer_stage"`
}

func NewJobDTO(j *model.Job) JobDTO {
	companyID := ""
	if j.CompanyID != nil {
		companyID = j.CompanyID.String()
	}
	return JobDTO{
		CompanyID:    companyID,
		ID:           j.ID.String(),
		RecruiterID:  j.RecruiterID,
		Title:        j.Title,
		Company:      j.Company,
		Location:     j.Location,
		Description:  j.Description,
		Requirements: nonNil(j.Requirements),
		Stages:       nonNil(j.Stages),
		CreatedAt:    j.CreatedAt,
	}
}

type JobPageDTO struct {
	Jobs       []JobDTO            `json:"jobs"`
	Pagination response.Pagination `json:"pagination"`
}
