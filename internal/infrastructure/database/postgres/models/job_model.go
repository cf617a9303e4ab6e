package models

import (
	"time"

	"github.com/google/uuid"
)

// JobModel represents the database model for Job
type JobModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index"`

	Company  string  `gorm:"type:varchar(100);not null"`
	Position string  `gorm:"type:varchar(100);not null"`
	Status   string  `gorm:"type:varchar(20);not null;default:'pending'"`
	Type     string  `gorm:"type:varchar(20);not null;default:'full-time'"`
	Location string  `gorm:"type:varchar(100);not null"`
	Notes    *string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Owner UserModel `gorm:"constraint:OnDelete:CASCADE;foreignKey:OwnerID;references:ID"`
}

func (JobModel) TableName() string {
	return "jobs"
}
