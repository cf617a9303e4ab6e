package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"jobtrackr/internal/config"
	domainJob "jobtrackr/internal/domain/job"
	domainUser "jobtrackr/internal/domain/user"
	"jobtrackr/internal/logger"
	"jobtrackr/internal/middleware"
	"jobtrackr/internal/usecase/auth"
	"jobtrackr/internal/usecase/job"
	"jobtrackr/pkg/mailer"
)

func TestMain(m *testing.M) {
	if err := logger.Init("production"); err != nil {
		panic(err)
	}
	m.Run()
}

// envelope mirrors the JSON response wrapper for assertions.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domainUser.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*domainUser.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *domainUser.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domainUser.ErrEmailTaken
		}
	}
	u.ID = uuid.New()
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domainUser.ErrNotFound
}

func (r *memUserRepo) GetByID(_ context.Context, userID uuid.UUID) (*domainUser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, domainUser.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) GetByResetTokenHash(_ context.Context, tokenHash string) (*domainUser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ResetTokenHash != nil && *u.ResetTokenHash == tokenHash {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domainUser.ErrNotFound
}

func (r *memUserRepo) Update(_ context.Context, u *domainUser.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.ID]; !ok {
		return domainUser.ErrNotFound
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return domainUser.ErrNotFound
	}
	u.PasswordHashed = passwordHash
	u.ResetTokenHash = nil
	u.ResetTokenExpiresAt = nil
	u.UpdatedAt = time.Now()
	return nil
}

func (r *memUserRepo) SetResetToken(_ context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return domainUser.ErrNotFound
	}
	u.ResetTokenHash = &tokenHash
	u.ResetTokenExpiresAt = &expiresAt
	u.UpdatedAt = time.Now()
	return nil
}

func (r *memUserRepo) ClearResetToken(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return domainUser.ErrNotFound
	}
	u.ResetTokenHash = nil
	u.ResetTokenExpiresAt = nil
	u.UpdatedAt = time.Now()
	return nil
}

type memJobRepo struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*domainJob.Job
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{jobs: make(map[uuid.UUID]*domainJob.Job)}
}

func (r *memJobRepo) Create(_ context.Context, j *domainJob.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	j.ID = uuid.New()
	clone := *j
	r.jobs[j.ID] = &clone
	return nil
}

func (r *memJobRepo) GetByID(_ context.Context, ownerID, jobID uuid.UUID) (*domainJob.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.jobs[jobID]
	if !ok || j.OwnerID != ownerID {
		return nil, domainJob.ErrNotFound
	}
	clone := *j
	return &clone, nil
}

func (r *memJobRepo) Update(_ context.Context, j *domainJob.Job) error {
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

func (r *memJobRepo) Delete(_ context.Context, ownerID, jobID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.jobs[jobID]
	if !ok || j.OwnerID != ownerID {
		return domainJob.ErrNotFound
	}
	delete(r.jobs, jobID)
	return nil
}

func (r *memJobRepo) List(_ context.Context, ownerID uuid.UUID, filter *domainJob.Filter) ([]*domainJob.Job, int64, error) {
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
	return matched, int64(len(matched)), nil
}

// newTestServer wires the auth and job handlers against in-memory
// repositories, mirroring the route layout of the real router.
func newTestServer() *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:   "test-secret-key-at-least-32-chars-long",
			Lifetime: time.Hour,
		},
		Reset: config.ResetConfig{
			TokenTTL: 15 * time.Minute,
			BaseURL:  "http://localhost:3000",
		},
	}

	authService := auth.NewService(newMemUserRepo(), mailer.Noop{}, nil, cfg)
	jobService := job.NewService(newMemJobRepo())

	authHandler := NewAuthHandler(authService)
	jobHandler := NewJobHandler(jobService)

	router := gin.New()

	authGroup := router.Group("/auth")
	authHandler.RegisterRoutes(authGroup)
	protected := authGroup.Group("")
	protected.Use(middleware.AuthMiddleware(cfg, nil))
	authHandler.RegisterProtectedRoutes(protected)

	jobGroup := router.Group("/jobs")
	jobGroup.Use(middleware.AuthMiddleware(cfg, nil))
	jobHandler.RegisterRoutes(jobGroup)

	return router
}

func performJSON(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// registerUser registers a user and returns its session token.
func registerUser(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()

	w := performJSON(router, "POST", "/auth/register", "", gin.H{
		"name":     "Test User",
		"email":    email,
		"password": "Secret123",
	})
	require.Equal(t, 201, w.Code, "register failed: %s", w.Body.String())

	env := decodeEnvelope(t, w)
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, uuid.NewString()[:8])
}
