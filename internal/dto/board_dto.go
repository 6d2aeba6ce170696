package dto

import (
	"time"

	"github.com/fadilmartias/talent-pipeline/internal/pipeline"
)

type CardDTO struct {
	ApplicationID  string    `json:"application_id"`
	CandidateName  string    `json:"candidate_name"`
	CandidateEmail string    `json:"candidate_email"`
	Score          *int      `json:"score"`
	Recommendation string    `json:"recommendation"`
	HasResume      bool      `json:"has_resume"`
	Stage          string    `json:"stage"`
	AppliedAt      time.Time `json:"applied_at"`
}

type ColumnDTO struct {
	Stage string    `json:"stage"`
	Cards []CardDTO `json:"cards"`
}

type BoardDTO struct {
	JobID   string      `json:"job_id"`
	Title   string      `json:"title"`
	Stages  []string    `json:"stages"`
	Columns []ColumnDTO `json:"columns"`
}

// MoveRequest drives every board gesture. Mode is direct (Target), step
// (Direction prev|next) or drag (From and To).
type MoveRequest struct {
	ApplicationID string `json:"application_id"`
	Mode          string `json:"mode"`
	Target        string `json:"target"`
	Direction     string `json:"direction"`
	From          string `json:"from"`
	To            string `json:"to"`
}

type SetStageRequest struct {
	Stage  string `json:"stage"`
	Source string `json:"source"`
}

type MoveResultDTO struct {
	ApplicationID string   `json:"application_id"`
	From          string   `json:"from"`
	To            string   `json:"to"`
	Source        string   `json:"source"`
	Applied       bool     `json:"applied"`
	Reverted      bool     `json:"reverted"`
	Notice        string   `json:"notice,omitempty"`
	Board         BoardDTO `json:"board"`
}

func NewCardDTO(c pipeline.Card) CardDTO {
	return CardDTO{
		ApplicationID:  c.ApplicationID,
		CandidateName:  c.CandidateName,
		CandidateEmail: c.CandidateEmail,
		Score:          c.Score,
		Recommendation: c.Recommendation,
		HasResume:      c.HasResume,
		Stage:          c.Stage,
		AppliedAt:      c.AppliedAt,
	}
}

func (c CardDTO) Card() pipeline.Card {
	return pipeline.Card{
		ApplicationID:  c.ApplicationID,
		CandidateName:  c.CandidateName,
		CandidateEmail: c.CandidateEmail,
		Score:          c.Score,
		Recommendation: c.Recommendation,
		HasResume:      c.HasResume,
		Stage:          c.Stage,
		AppliedAt:      c.AppliedAt,
	}
}

func NewBoardDTO(jobID, title string, stages pipeline.Stages, columns []pipeline.Column) BoardDTO {
	out := BoardDTO{
		JobID:   jobID,
		Title:   title,
		Stages:  stages.Clone(),
		Columns: make([]ColumnDTO, 0, len(columns)),
	}
	for _, col := range columns {
		cards := make([]CardDTO, 0, len(col.Cards))
		for _, c := range col.Cards {
			cards = append(cards, NewCardDTO(c))
		}
		out.Columns = append(out.Columns, ColumnDTO{Stage: col.Stage, Cards: cards})
	}
	return out
}

// Cards flattens the board back into pipeline cards.
func (b BoardDTO) Cards() []pipeline.Card {
	var out []pipeline.Card
	for _, col := range b.Columns {
		for _, c := range col.Cards {
			out = append(out, c.Card())
		}
	}
	return out
}
