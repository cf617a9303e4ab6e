package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobtrackr/internal/domain/job"
	"jobtrackr/internal/infrastructure/database/postgres/models"
)

// JobRepository implements the job domain Repository interface. Every query
// carries the owner's id in the WHERE clause; a job belonging to another
// user surfaces as job.ErrNotFound, same as a missing one.
type JobRepository struct {
	db *DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *DB) job.Repository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, j *job.Job) error {
	j.ID = uuid.New()
	j.CreatedAt = time.Now()
	j.UpdatedAt = time.Now()

	dbModel := toJobModel(j)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	j.ID = dbModel.ID
	j.CreatedAt = dbModel.CreatedAt
	j.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *JobRepository) GetByID(ctx context.Context, ownerID, jobID uuid.UUID) (*job.Job, error) {
	var dbModel models.JobModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ? AND owner_id = ?", jobID, ownerID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, job.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return toJobEntity(&dbModel), nil
}

func (r *JobRepository) Update(ctx context.Context, j *job.Job) error {
	j.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).Model(&models.JobModel{}).
		Where("id = ? AND owner_id = ?", j.ID, j.OwnerID).
		Updates(map[string]interface{}{
			"company":    j.Company,
			"position":   j.Position,
			"status":     string(j.Status),
			"type":       string(j.Type),
			"location":   j.Location,
			"notes":      j.Notes,
			"updated_at": j.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return job.ErrNotFound
	}

	return nil
}

func (r *JobRepository) Delete(ctx context.Context, ownerID, jobID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ? AND owner_id = ?", jobID, ownerID).
		Delete(&models.JobModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return job.ErrNotFound
	}

	return nil
}

func (r *JobRepository) List(ctx context.Context, ownerID uuid.UUID, filter *job.Filter) ([]*job.Job, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.JobModel{}).
		Where("owner_id = ?", ownerID)

	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("company ILIKE ? OR position ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	sortBy := filter.SortBy
	switch sortBy {
	case "company", "position", "status", "created_at":
	default:
		sortBy = "created_at"
	}
	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	var dbModels []models.JobModel
	err := query.
		Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}

	jobs := make([]*job.Job, len(dbModels))
	for i := range dbModels {
		jobs[i] = toJobEntity(&dbModels[i])
	}

	return jobs, total, nil
}

func toJobModel(j *job.Job) *models.JobModel {
	return &models.JobModel{
		ID:        j.ID,
		OwnerID:   j.OwnerID,
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

func toJobEntity(m *models.JobModel) *job.Job {
	return &job.Job{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Company:   m.Company,
		Position:  m.Position,
		Status:    job.Status(m.Status),
		Type:      job.Type(m.Type),
		Location:  m.Location,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
