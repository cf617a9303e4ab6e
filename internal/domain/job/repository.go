package job

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for job persistence operations. Lookups
// and mutations take the owner's id and must never touch another user's
// rows.
type Repository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, ownerID, jobID uuid.UUID) (*Job, error)
	Update(ctx context.Context, job *Job) error
	Delete(ctx context.Context, ownerID, jobID uuid.UUID) error
	List(ctx context.Context, ownerID uuid.UUID, filter *Filter) ([]*Job, int64, error)
}

// Filter represents filtering options for listing jobs
type Filter struct {
	Status *Status
	Type   *Type

	// Search matches company or position, case-insensitive
	Search string

	// Pagination
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
