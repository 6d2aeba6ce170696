package model

import (
	"time"

	"github.com/google/uuid"
)

// StageTransition is one persisted stage change of an application.
type StageTransition struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;index" json:"application_id"`
	JobID         uuid.UUID `gorm:"type:uuid;index" json:"job_id"`
	FromStage     string    `gorm:"type:varchar(255)" json:"from_stage"`
	ToStage       string    `gorm:"type:varchar(255)" json:"to_stage"`
	Source        string    `gorm:"type:varchar(20)" json:"source"` // direct, step, drag
	ActorID       string    `gorm:"type:varchar(64)" json:"actor_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func (t *StageTransition) TableName() string {
	return "stage_transitions"
}
