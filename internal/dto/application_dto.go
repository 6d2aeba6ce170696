package dto

import (
	"time"

	"github.com/fadilmartias/talent-pipeline/internal/model"
)

// SubmitApplicationRequest carries the multipart form fields of a
// submission. The resume file travels separately.
type SubmitApplicationRequest struct {
	JobID      string `form:"job_id" json:"job_id"`
	Name       string `form:"name" json:"name"`
	Email      string `form:"email" json:"email"`
	ResumeText string `form:"resume_text" json:"resume_text"`
}

type ApplicationDTO struct {
	ID             string    `json:"id"`
	JobID          string    `json:"job_id"`
	CandidateName  string    `json:"candidate_name"`
	CandidateEmail string    `json:"candidate_email"`
	Score          *int      `json:"score"`
	Strengths      []string  `json:"strengths"`
	Weaknesses     []string  `json:"weaknesses"`
	Summary        string    `json:"summary"`
	Recommendation string    `json:"recommendation"`
	Stage          string    `json:"stage"`
	HasResume      bool      `json:"has_resume"`
	CreatedAt      time.Time `json:"created_at"`
}

type StageTransitionDTO struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Source    string    `json:"source"`
	ActorID   string    `json:"actor_id"`
	CreatedAt time.Time `json:"created_at"`
}

type ApplicationDetailDTO struct {
	ApplicationDTO
	ResumeText string               `json:"resume_text"`
	ResumeURL  string               `json:"resume_url,omitempty"`
	History    []StageTransitionDTO `json:"history"`
}

type SubmitApplicationResponse struct {
	Application ApplicationDTO `json:"application"`
	// AutoAdvanced is set when the score skipped the intake stage.
	AutoAdvanced bool `json:"auto_advanced"`
	Degraded     bool `json:"degraded"`
}

func NewApplicationDTO(a *model.Application) ApplicationDTO {
	return ApplicationDTO{
		ID:             a.ID.String(),
		JobID:          a.JobID.String(),
		CandidateName:  a.CandidateName,
		CandidateEmail: a.CandidateEmail,
		Score:          a.Score,
		Strengths:      nonNil(a.Strengths),
		Weaknesses:     nonNil(a.Weaknesses),
		Summary:        a.Summary,
		Recommendation: a.Recommendation,
		Stage:          a.Stage,
		HasResume:      a.ResumeKey != "",
		CreatedAt:      a.CreatedAt,
	}
}

func NewStageTransitionDTOs(rows []model.StageTransition) []StageTransitionDTO {
	out := make([]StageTransitionDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, StageTransitionDTO{
			From:      r.FromStage,
			To:        r.ToStage,
			Source:    r.Source,
			ActorID:   r.ActorID,
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
