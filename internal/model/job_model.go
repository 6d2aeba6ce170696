package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

type Job struct {
	ID           uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RecruiterID  string           `gorm:"type:varchar(64);index" json:"recruiter_id"`
	Title        string           `gorm:"type:varchar(255)" json:"title"`
	Company      string           `gorm:"type:varchar(255)" json:"company"`
	CompanyID    *uuid.UUID       `gorm:"type:uuid;index" json:"company_id"`
	Location     string           `gorm:"type:varchar(255)" json:"location"`
	Description  string           `gorm:"type:text" json:"description"`
	Requirements pq.StringArray   `gorm:"type:text[]" json:"requirements"`
	Stages       pq.StringArray   `gorm:"type:text[]" json:"stages"`
	Embedding    *pgvector.Vector `gorm:"type:vector(3072)" json:"-"` // null until embedded
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func (j *Job) TableName() string {
	return "jobs"
}

// ScoringText is the job description handed to the scoring policy.
func (j *Job) ScoringText() string {
	var sb strings.Builder
	sb.WriteString(j.Description)
	if len(j.Requirements) > 0 {
		sb.WriteString(fmt.Sprintf("\n\nRequirements: %s", strings.Join(j.Requirements, ", ")))
	}
	return sb.String()
}

// EmbeddingText is what gets embedded for job recommendations.
func (j *Job) EmbeddingText() string {
	return strings.TrimSpace(fmt.Sprintf("%s\n%s", j.Title, j.ScoringText()))
}
