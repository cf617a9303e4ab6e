package job

import (
	"time"

	"github.com/google/uuid"

	domainJob "jobtrackr/internal/domain/job"
)

type CreateJobRequest struct {
	Company  string  `json:"company" validate:"required,min=1,max=100"`
	Position string  `json:"position" validate:"required,min=1,max=100"`
	Status   string  `json:"status" validate:"omitempty,job_status"`
	Type     string  `json:"type" validate:"omitempty,job_type"`
	Location string  `json:"location" validate:"required,min=1,max=100"`
	Notes    *string `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateJobRequest struct {
	Company  *string `json:"company" validate:"omitempty,min=1,max=100"`
	Position *string `json:"position" validate:"omitempty,min=1,max=100"`
	Status   *string `json:"status" validate:"omitempty,job_status"`
	Type     *string `json:"type" validate:"omitempty,job_type"`
	Location *string `json:"location" validate:"omitempty,min=1,max=100"`
	Notes    *string `json:"notes" validate:"omitempty,max=2000"`
}

type ListJobsRequest struct {
	Status    string `form:"status" validate:"omitempty,job_status"`
	Type      string `form:"type" validate:"omitempty,job_type"`
	Search    string `form:"search" validate:"omitempty,max=100"`
	SortBy    string `form:"sort_by" validate:"omitempty,oneof=company position status created_at"`
	SortOrder string `form:"sort_order" validate:"omitempty,oneof=asc desc"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type JobResponse struct {
	ID        uuid.UUID `json:"id"`
	Company   string    `json:"company"`
	Position  string    `json:"position"`
	Status    string    `json:"status"`
	Type      string    `json:"type"`
	Location  string    `json:"location"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type JobListResponse struct {
	Jobs     []*JobResponse `json:"jobs"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

func ToJobResponse(j *domainJob.Job) *JobResponse {
	if j == nil {
		return nil
	}
	return &JobResponse{
		ID:        j.ID,
		Company:   j.Company,
		Position:  j.Position,
		Status:    string(j.Status),
		Type:      string(j.Type),
		Location:  j.Location,
		Notes:     j.Notes,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}
