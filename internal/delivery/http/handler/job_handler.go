package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jobtrackr/internal/middleware"
	"jobtrackr/internal/usecase/job"
	"jobtrackr/pkg/utils"
)

type JobHandler struct {
	service *job.Service
}

func NewJobHandler(service *job.Service) *JobHandler {
	return &JobHandler{service: service}
}

// RegisterRoutes mounts the job CRUD endpoints. The group is expected to be
// behind the auth gate; every operation is scoped to the caller.
func (h *JobHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("", h.Create)
	router.GET("", h.List)
	router.GET("/:id", h.Get)
	router.PATCH("/:id", h.Update)
	router.DELETE("/:id", h.Delete)
}

func (h *JobHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req job.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Company = utils.SanitizeString(req.Company)
	req.Position = utils.SanitizeString(req.Position)
	req.Location = utils.SanitizeString(req.Location)
	if req.Notes != nil {
		sanitized := utils.SanitizeText(*req.Notes)
		req.Notes = &sanitized
	}

	jobResponse, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Job created successfully", jobResponse)
}

func (h *JobHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req job.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	listResponse, err := h.service.List(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Jobs retrieved successfully", listResponse)
}

func (h *JobHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "job not found")
		return
	}

	jobResponse, err := h.service.Get(c.Request.Context(), userID, jobID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Job retrieved successfully", jobResponse)
}

func (h *JobHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "job not found")
		return
	}

	var req job.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Company != nil {
		sanitized := utils.SanitizeString(*req.Company)
		req.Company = &sanitized
	}
	if req.Position != nil {
		sanitized := utils.SanitizeString(*req.Position)
		req.Position = &sanitized
	}
	if req.Location != nil {
		sanitized := utils.SanitizeString(*req.Location)
		req.Location = &sanitized
	}
	if req.Notes != nil {
		sanitized := utils.SanitizeText(*req.Notes)
		req.Notes = &sanitized
	}

	jobResponse, err := h.service.Update(c.Request.Context(), userID, jobID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Job updated successfully", jobResponse)
}

func (h *JobHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "job not found")
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, jobID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Job deleted successfully", nil)
}
