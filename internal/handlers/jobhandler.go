package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobboard-api/internal/dtos"
	"jobboard-api/internal/models"
	"jobboard-api/internal/query"
)

// JobProvider is the listing service surface the handler depends on.
type JobProvider interface {
	List(ctx context.Context, filters query.Filters, sortKey string, page query.Page) (*dtos.JobListResponse, error)
	Get(ctx context.Context, id uint) (*models.Job, error)
	Create(ctx context.Context, req *dtos.JobRequest, ownerRef string) (*models.Job, error)
	Update(ctx context.Context, id uint, callerID uint, req *dtos.JobUpdateRequest) (*models.Job, error)
	Delete(ctx context.Context, id uint, callerID uint) error
	Dashboard(ctx context.Context, recruiterID uint) ([]models.Job, error)
	Companies(ctx context.Context) ([]dtos.CompanyResponse, error)
}

type JobHandler struct {
	Jobs   JobProvider
	Logger *zap.Logger
}

func NewJobHandler(jobs JobProvider, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		Jobs:   jobs,
		Logger: logger,
	}
}

// ListJobs is GET /jobs: filters, sort and pagination from the query string.
// Malformed filter values are ignored, never an error.
func (h *JobHandler) ListJobs(c *gin.Context) {
	values := c.Request.URL.Query()
	filters := query.ParseFilters(values)
	page := query.ParsePage(values)

	resp, err := h.Jobs.List(c.Request.Context(), filters, values.Get("sort"), page)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetJob is GET /jobs/:id. Fetching a listing bumps its view counter.
func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	job, err := h.Jobs.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// CreateJob is POST /jobs. The owner reference is the authenticated subject;
// an account row is provisioned for it when none exists yet.
func (h *JobHandler) CreateJob(c *gin.Context) {
	subject, ok := CallerSubject(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dtos.JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	job, err := h.Jobs.Create(c.Request.Context(), &req, subject)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// UpdateJob is PUT /jobs/:id, owner only.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	caller, _ := CurrentUser(c)

	var req dtos.JobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	job, err := h.Jobs.Update(c.Request.Context(), id, caller.ID, &req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// DeleteJob is DELETE /jobs/:id, owner only.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	caller, _ := CurrentUser(c)

	if err := h.Jobs.Delete(c.Request.Context(), id, caller.ID); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}

// Dashboard is GET /dashboard: the caller's own listings, newest first.
func (h *JobHandler) Dashboard(c *gin.Context) {
	caller, _ := CurrentUser(c)

	jobs, err := h.Jobs.Dashboard(c.Request.Context(), caller.ID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// Companies is GET /companies: listings grouped by company name.
func (h *JobHandler) Companies(c *gin.Context) {
	companies, err := h.Jobs.Companies(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job id"})
		return 0, false
	}
	return uint(id), true
}
