package job

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainJob "jobtrackr/internal/domain/job"
	"jobtrackr/internal/logger"
	appErrors "jobtrackr/pkg/errors"
)

func TestMain(m *testing.M) {
	if err := logger.Init("production"); err != nil {
		panic(err)
	}
	m.Run()
}

// fakeJobRepo is an in-memory job.Repository that enforces owner scoping
// the same way the postgres implementation does.
type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*domainJob.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[uuid.UUID]*domainJob.Job)}
}

func (r *fakeJobRepo) Create(_ context.Context, j *domainJob.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	j.ID = uuid.New()
	clone := *j
	r.jobs[j.ID] = &clone
	return nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, ownerID, jobID uuid.UUID) (*domainJob.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.jobs[jobID]
	if !ok || j.OwnerID != ownerID {
		return nil, domainJob.ErrNotFound
	}
	clone := *j
	return &clone, nil
}

func (r *fakeJobRepo) Update(_ context.Context, j *domainJob.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.jobs[j.ID]
	if !ok || stored.OwnerID != j.OwnerID {
		return domainJob.ErrNotFound
	}
	clone := *j
	r.jobs[j.ID] = &clone
	return nil
}

func (r *fakeJobRepo) Delete(_ context.Context, ownerID, jobID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.jobs[jobID]
	if !ok || j.OwnerID != ownerID {
		return domainJob.ErrNotFound
	}
	delete(r.jobs, jobID)
	return nil
}

func (r *fakeJobRepo) List(_ context.Context, ownerID uuid.UUID, filter *domainJob.Filter) ([]*domainJob.Job, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*domainJob.Job
	for _, j := range r.jobs {
		if j.OwnerID != ownerID {
			continue
		}
		if filter.Status != nil && j.Status != *filter.Status {
			continue
		}
		if filter.Type != nil && j.Type != *filter.Type {
			continue
		}
		clone := *j
		matched = append(matched, &clone)
	}

	sort.Slice(matched, func(a, b int) bool {
		return matched[a].Company < matched[b].Company
	})

	return matched, int64(len(matched)), nil
}

func newTestService() *Service {
	return NewService(newFakeJobRepo())
}

func createJob(t *testing.T, svc *Service, ownerID uuid.UUID, company string) *JobResponse {
	t.Helper()

	resp, err := svc.Create(context.Background(), ownerID, &CreateJobRequest{
		Company:  company,
		Position: "Backend Engineer",
		Location: "Riga",
	})
	require.NoError(t, err)
	return resp
}

func TestCreate_Defaults(t *testing.T) {
	svc := newTestService()
	ownerID := uuid.New()

	resp := createJob(t, svc, ownerID, "Acme")
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "full-time", resp.Type)
	assert.NotEqual(t, uuid.Nil, resp.ID)
}

func TestCreate_InvalidStatus(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), uuid.New(), &CreateJobRequest{
		Company:  "Acme",
		Position: "Backend Engineer",
		Location: "Riga",
		Status:   "ghosted",
	})
	require.Error(t, err)

	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestScoping_ForeignJobsLookAbsent(t *testing.T) {
	svc := newTestService()
	ownerA := uuid.New()
	ownerB := uuid.New()

	created := createJob(t, svc, ownerA, "Acme")

	// Read, update and delete by another user must all report not-found.
	_, err := svc.Get(context.Background(), ownerB, created.ID)
	assert.ErrorIs(t, err, appErrors.ErrJobNotFound)

	position := "Staff Engineer"
	_, err = svc.Update(context.Background(), ownerB, created.ID, &UpdateJobRequest{Position: &position})
	assert.ErrorIs(t, err, appErrors.ErrJobNotFound)

	err = svc.Delete(context.Background(), ownerB, created.ID)
	assert.ErrorIs(t, err, appErrors.ErrJobNotFound)

	// The owner still sees the job untouched.
	got, err := svc.Get(context.Background(), ownerA, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", got.Position)
}

func TestUpdate_PartialFields(t *testing.T) {
	svc := newTestService()
	ownerID := uuid.New()

	created := createJob(t, svc, ownerID, "Acme")

	status := "interview"
	updated, err := svc.Update(context.Background(), ownerID, created.ID, &UpdateJobRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "interview", updated.Status)
	assert.Equal(t, "Acme", updated.Company)
}

func TestList_FiltersByOwnerAndStatus(t *testing.T) {
	svc := newTestService()
	ownerA := uuid.New()
	ownerB := uuid.New()

	createJob(t, svc, ownerA, "Acme")
	createJob(t, svc, ownerA, "Globex")
	createJob(t, svc, ownerB, "Initech")

	list, err := svc.List(context.Background(), ownerA, &ListJobsRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, list.Total)
	require.Len(t, list.Jobs, 2)
	assert.Equal(t, "Acme", list.Jobs[0].Company)

	list, err = svc.List(context.Background(), ownerA, &ListJobsRequest{Status: "offer"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, list.Total)
}

func TestDelete_ThenGone(t *testing.T) {
	svc := newTestService()
	ownerID := uuid.New()

	created := createJob(t, svc, ownerID, "Acme")

	require.NoError(t, svc.Delete(context.Background(), ownerID, created.ID))

	_, err := svc.Get(context.Background(), ownerID, created.ID)
	assert.ErrorIs(t, err, appErrors.ErrJobNotFound)
}
