package job

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the state of a job application
type Status string

const (
	StatusPending   Status = "pending"   // Applied, no response yet
	StatusInterview Status = "interview" // Interview scheduled
	StatusDeclined  Status = "declined"  // Application rejected
	StatusOffer     Status = "offer"     // Offer received
)

// Type represents the employment type of a job posting
type Type string

const (
	TypeFullTime   Type = "full-time"
	TypePartTime   Type = "part-time"
	TypeRemote     Type = "remote"
	TypeInternship Type = "internship"
)

// Job represents a tracked job application. Every job is owned by exactly
// one user; all queries are scoped by OwnerID.
type Job struct {
	ID      uuid.UUID
	OwnerID uuid.UUID

	Company  string
	Position string
	Status   Status
	Type     Type
	Location string
	Notes    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
