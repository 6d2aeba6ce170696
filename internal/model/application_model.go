package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Application struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	JobID          uuid.UUID      `gorm:"type:uuid;index" json:"job_id"`
	CandidateID    string         `gorm:"type:varchar(64);index" json:"candidate_id"`
	CandidateName  string         `gorm:"type:varchar(255)" json:"candidate_name"`
	CandidateEmail string         `gorm:"type:varchar(255);index" json:"candidate_email"`
	ResumeText     string         `gorm:"type:text" json:"resume_text"`
	ResumeKey      string         `gorm:"type:varchar(512)" json:"resume_key"`
	Score          *int           `json:"score"`
	Strengths      pq.StringArray `gorm:"type:text[]" json:"strengths"`
	Weaknesses     pq.StringArray `gorm:"type:text[]" json:"weaknesses"`
	Summary        string         `gorm:"type:text" json:"summary"`
	Recommendation string         `gorm:"type:varchar(20)" json:"recommendation"` // Approve, Reject, Review
	Stage          string         `gorm:"type:varchar(255)" json:"stage"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (a *Application) TableName() string {
	return "applications"
}
