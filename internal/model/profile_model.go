package model

import (
	"time"

	"github.com/lib/pq"
)

// Profile is a candidate's saved profile, keyed by user id.
type Profile struct {
	ID           string         `gorm:"type:varchar(64);primaryKey" json:"id"`
	FullName     string         `gorm:"type:varchar(255)" json:"full_name"`
	Email        string         `gorm:"type:varchar(255)" json:"email"`
	Headline     string         `gorm:"type:varchar(255)" json:"headline"`
	Summary      string         `gorm:"type:text" json:"summary"`
	Skills       pq.StringArray `gorm:"type:text[]" json:"skills"`
	LinkedInURL  string         `gorm:"type:varchar(512)" json:"linkedin_url"`
	PortfolioURL string         `gorm:"type:varchar(512)" json:"portfolio_url"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (p *Profile) TableName() string {
	return "profiles"
}
