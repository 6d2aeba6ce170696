package model

import (
	"time"

	"github.com/google/uuid"
)

// Company is an employer page owned by one recruiter. Jobs may link to it.
type Company struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OwnerID     string    `gorm:"type:varchar(64);index" json:"owner_id"`
	Name        string    `gorm:"type:varchar(255);index" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Website     string    `gorm:"type:varchar(512)" json:"website"`
	LogoURL     string    `gorm:"type:varchar(512)" json:"logo_url"`
	CultureText string    `gorm:"type:text" json:"culture_text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Company) TableName() string {
	return "companies"
}
