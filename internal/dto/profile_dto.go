package dto

import (
	"time"

	"github.com/fadilmartias/talent-pipeline/internal/model"
)

type UpdateProfileRequest struct {
	FullName     string `json:"full_name"`
	Headline     string `json:"headline"`
	Summary      string `json:"summary"`
	Skills       string `json:"skills"` // comma separated
	LinkedInURL  string `json:"linkedin_url"`
	PortfolioURL string `json:"portfolio_url"`
}

type ProfileDTO struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Headline     string    `json:"headline"`
	Summary      string    `json:"summary"`
	Skills       []string  `json:"skills"`
	LinkedInURL  string    `json:"linkedin_url"`
	PortfolioURL string    `json:"portfolio_url"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewProfileDTO(p *model.Profile) ProfileDTO {
	return ProfileDTO{
		ID:           p.ID,
		FullName:     p.FullName,
		Email:        p.Email,
		Headline:     p.Headline,
		Summary:      p.Summary,
		Skills:       nonNil(p.Skills),
		LinkedInURL:  p.LinkedInURL,
		PortfolioURL: p.PortfolioURL,
		UpdatedAt:    p.UpdatedAt,
	}
}
