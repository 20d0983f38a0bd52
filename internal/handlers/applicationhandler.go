package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobboard-api/internal/dtos"
	"jobboard-api/internal/models"
)

type ApplicationProvider interface {
	Apply(ctx context.Context, jobID uint, applicant *models.User, req *dtos.ApplicationRequest) (*models.Application, error)
	ListForUser(ctx context.Context, user *models.User, jobID *uint) ([]models.Application, error)
}

type ApplicationHandler struct {
	Applications ApplicationProvider
	Logger       *zap.Logger
}

func NewApplicationHandler(applications ApplicationProvider, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		Applications: applications,
		Logger:       logger,
	}
}

// Apply is POST /jobs/:id/apply, job seekers only.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	jobID, ok := parseID(c)
	if !ok {
		return
	}
	caller, _ := CurrentUser(c)

	var req dtos.ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	application, err := h.Applications.Apply(c.Request.Context(), jobID, caller, &req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, application)
}

// List is GET /applications. Job seekers see their own submissions,
// recruiters the applications to their listings, optionally narrowed with
// ?jobId=.
func (h *ApplicationHandler) List(c *gin.Context) {
	caller, _ := CurrentUser(c)

	var jobID *uint
	if raw := c.Query("jobId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job id"})
			return
		}
		id := uint(parsed)
		jobID = &id
	}

	applications, err := h.Applications.ListForUser(c.Request.Context(), caller, jobID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, applications)
}
