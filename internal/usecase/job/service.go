package job

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainJob "jobtrackr/internal/domain/job"
	"jobtrackr/internal/logger"
	appErrors "jobtrackr/pkg/errors"
	"jobtrackr/pkg/utils"
)

// Service implements job-application use cases. Callers pass the identity
// resolved by the auth gate; ownership is enforced at the repository layer,
// and a foreign job surfaces exactly like a missing one.
type Service struct {
	jobRepo domainJob.Repository
}

// NewService creates a new job service
func NewService(jobRepo domainJob.Repository) *Service {
	return &Service{jobRepo: jobRepo}
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req *CreateJobRequest) (*JobResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	status := domainJob.StatusPending
	if req.Status != "" {
		status = domainJob.Status(req.Status)
	}
	jobType := domainJob.TypeFullTime
	if req.Type != "" {
		jobType = domainJob.Type(req.Type)
	}

	j := &domainJob.Job{
		OwnerID:  ownerID,
		Company:  req.Company,
		Position: req.Position,
		Status:   status,
		Type:     jobType,
		Location: req.Location,
		Notes:    req.Notes,
	}

	if err := s.jobRepo.Create(ctx, j); err != nil {
		return nil, err
	}

	logger.Info("Job created",
		zap.String("job_id", j.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("event", "job_created"),
	)

	return ToJobResponse(j), nil
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, req *ListJobsRequest) (*JobListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	filter := &domainJob.Filter{
		Search:    req.Search,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}
	if req.Status != "" {
		status := domainJob.Status(req.Status)
		filter.Status = &status
	}
	if req.Type != "" {
		jobType := domainJob.Type(req.Type)
		filter.Type = &jobType
	}

	jobs, total, err := s.jobRepo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*JobResponse, len(jobs))
	for i, j := range jobs {
		responses[i] = ToJobResponse(j)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	return &JobListResponse{
		Jobs:     responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *Service) Get(ctx context.Context, ownerID, jobID uuid.UUID) (*JobResponse, error) {
	j, err := s.jobRepo.GetByID(ctx, ownerID, jobID)
	if err != nil {
		if errors.Is(err, domainJob.ErrNotFound) {
			return nil, appErrors.ErrJobNotFound
		}
		return nil, err
	}

	return ToJobResponse(j), nil
}

func (s *Service) Update(ctx context.Context, ownerID, jobID uuid.UUID, req *UpdateJobRequest) (*JobResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	j, err := s.jobRepo.GetByID(ctx, ownerID, jobID)
	if err != nil {
		if errors.Is(err, domainJob.ErrNotFound) {
			return nil, appErrors.ErrJobNotFound
		}
		return nil, err
	}

	if req.Company != nil {
		j.Company = *req.Company
	}
	if req.Position != nil {
		j.Position = *req.Position
	}
	if req.Status != nil {
		j.Status = domainJob.Status(*req.Status)
	}
	if req.Type != nil {
		j.Type = domainJob.Type(*req.Type)
	}
	if req.Location != nil {
		j.Location = *req.Location
	}
	if req.Notes != nil {
		j.Notes = req.Notes
	}

	if err := s.jobRepo.Update(ctx, j); err != nil {
		if errors.Is(err, domainJob.ErrNotFound) {
			return nil, appErrors.ErrJobNotFound
		}
		return nil, err
	}

	return ToJobResponse(j), nil
}

func (s *Service) Delete(ctx context.Context, ownerID, jobID uuid.UUID) error {
	if err := s.jobRepo.Delete(ctx, ownerID, jobID); err != nil {
		if errors.Is(err, domainJob.ErrNotFound) {
			return appErrors.ErrJobNotFound
		}
		return err
	}

	logger.Info("Job deleted",
		zap.String("job_id", jobID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("event", "job_deleted"),
	)

	return nil
}
