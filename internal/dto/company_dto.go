package dto

import (
	"time"

	"github.com/fadilmartias/talent-pipeline/internal/model"
)

type CompanyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website"`
	LogoURL     string `json:"logo_url"`
	CultureText string `json:"culture_text"`
}

type CompanyDTO struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Website     string    `json:"website"`
	LogoURL     string    `json:"logo_url"`
	CultureText string    `json:"culture_text"`
	CreatedAt   time.Time `json:"created_at"`
}

// CompanyDetailDTO is the public company page with its open jobs.
type CompanyDetailDTO struct {
	CompanyDTO
	Jobs []JobDTO `json:"jobs"`
}

func NewCompanyDTO(c *model.Company) CompanyDTO {
	return CompanyDTO{
		ID:          c.ID.String(),
		OwnerID:     c.OwnerID,
		Name:        c.Name,
		Description: c.Description,
		Website:     c.Website,
		LogoURL:     c.LogoURL,
		CultureText: c.CultureText,
		CreatedAt:   c.CreatedAt,
	}
}
