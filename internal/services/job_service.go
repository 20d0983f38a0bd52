package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"jobboard-api/internal/apperrors"
	"jobboard-api/internal/cache"
	"jobboard-api/internal/dtos"
	"jobboard-api/internal/models"
	"jobboard-api/internal/query"
)

const listVersionKey = "jobs:list:version"

type JobService struct {
	db       *gorm.DB
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger

	// Clock used for posted-date cutoffs. Overridden in tests.
	now func() time.Time
}

func NewJobService(db *gorm.DB, c cache.Cache, cacheTTL time.Duration, logger *zap.Logger) *JobService {
	return &JobService{
		db:       db,
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// List runs the read pipeline: compile filters, resolve the sort, count the
// match set, fetch one window and assemble the envelope. Identical parameters
// against an unchanged store produce identical output.
func (s *JobService) List(ctx context.Context, filters query.Filters, sortKey string, page query.Page) (*dtos.JobListResponse, error) {
	cacheKey := s.listCacheKey(ctx, filters, sortKey, page)

	if s.cache != nil {
		var raw string
		if err := s.cache.Get(ctx, cacheKey, &raw); err == nil {
			var resp dtos.JobListResponse
			if err := json.Unmarshal([]byte(raw), &resp); err == nil {
				return &resp, nil
			}
			s.logger.Warn("discarding unreadable list cache entry", zap.String("key", cacheKey))
		} else if !errors.Is(err, cache.ErrNotFound) {
			s.logger.Warn("list cache read failed", zap.Error(err))
		}
	}

	scope := filters.Scope(s.now())

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Job{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, apperrors.Internal("counting listings", err)
	}

	jobs := make([]models.Job, 0, page.Limit)
	err := s.db.WithContext(ctx).Model(&models.Job{}).Scopes(scope).
		Order(query.ResolveSort(sortKey)).
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&jobs).Error
	if err != nil {
		return nil, apperrors.Internal("fetching listings", err)
	}

	resp := &dtos.JobListResponse{
		Jobs:       jobs,
		Pagination: page.Result(total),
	}

	if s.cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(raw), s.cacheTTL); err != nil {
				s.logger.Warn("list cache write failed", zap.Error(err))
			}
		}
	}

	return resp, nil
}

func (s *JobService) listCacheKey(ctx context.Context, filters query.Filters, sortKey string, page query.Page) string {
	version := "0"
	if s.cache != nil {
		if err := s.cache.Get(ctx, listVersionKey, &version); err != nil && !errors.Is(err, cache.ErrNotFound) {
			s.logger.Warn("list cache version read failed", zap.Error(err))
		}
	}
	return fmt.Sprintf("jobs:list:v%s:%s:%s:%d:%d", version, filters.CacheKey(), sortKey, page.Page, page.Limit)
}

// invalidateListCache bumps the namespace version so stale windows age out.
func (s *JobService) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Increment(ctx, listVersionKey); err != nil {
		s.logger.Warn("list cache invalidation failed", zap.Error(err))
	}
}

// Get fetches one listing and bumps its view counter. The increment is best
// effort: a lost update under concurrent viewers is acceptable for a display
// counter, and an increment failure never fails the read.
func (s *JobService) Get(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	err := s.db.WithContext(ctx).Preload("Recruiter").First(&job, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("job not found", err)
	}
	if err != nil {
		return nil, apperrors.Internal("fetching job", err)
	}

	incErr := s.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	if incErr != nil {
		s.logger.Warn("view count increment failed", zap.Uint("job_id", id), zap.Error(incErr))
	}

	return &job, nil
}

// Create persists a new listing. When the owner reference has no account row
// yet, one is provisioned as a recruiter first; an existing row keeps its role.
func (s *JobService) Create(ctx context.Context, req *dtos.JobRequest, ownerRef string) (*models.Job, error) {
	req.Normalize()
	if missing := req.MissingFields(); missing != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("missing required fields: %v", missing), nil)
	}

	var owner models.User
	err := s.db.WithContext(ctx).
		Where(models.User{ClerkID: ownerRef}).
		Attrs(models.User{Role: models.RoleRecruiter}).
		FirstOrCreate(&owner).Error
	if err != nil {
		return nil, apperrors.Internal("resolving listing owner", err)
	}

	job := req.ToModel()
	job.RecruiterID = owner.ID
	if err := s.db.WithContext(ctx).Create(&job).Error; err != nil {
		return nil, apperrors.Internal("creating job", err)
	}

	s.invalidateListCache(ctx)
	s.logger.Info("job created",
		zap.Uint("job_id", job.ID),
		zap.String("title", job.Title),
		zap.String("owner_ref", ownerRef),
	)
	return &job, nil
}

// Update applies the supplied fields to a listing owned by the caller. Fields
// absent from the payload are untouched; supplied fields are written even when
// they carry a zero value. Last write wins; there is no optimistic-concurrency
// check.
func (s *JobService) Update(ctx context.Context, id uint, callerID uint, req *dtos.JobUpdateRequest) (*models.Job, error) {
	var job models.Job
	err := s.db.WithContext(ctx).First(&job, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("job not found", err)
	}
	if err != nil {
		return nil, apperrors.Internal("fetching job", err)
	}

	if job.RecruiterID != callerID {
		return nil, apperrors.Forbidden("you can only edit your own jobs", nil)
	}

	req.Normalize()
	changes := req.Changes()
	if len(changes) == 0 {
		return &job, nil
	}
	if err := s.db.WithContext(ctx).Model(&job).Updates(changes).Error; err != nil {
		return nil, apperrors.Internal("updating job", err)
	}
	if err := s.db.WithContext(ctx).First(&job, id).Error; err != nil {
		return nil, apperrors.Internal("reloading job", err)
	}

	s.invalidateListCache(ctx)
	return &job, nil
}

// Delete removes a listing owned by the caller.
func (s *JobService) Delete(ctx context.Context, id uint, callerID uint) error {
	var job models.Job
	err := s.db.WithContext(ctx).First(&job, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("job not found", err)
	}
	if err != nil {
		return apperrors.Internal("fetching job", err)
	}

	if job.RecruiterID != callerID {
		return apperrors.Forbidden("you can only delete your own jobs", nil)
	}

	if err := s.db.WithContext(ctx).Delete(&job).Error; err != nil {
		return apperrors.Internal("deleting job", err)
	}

	s.invalidateListCache(ctx)
	s.logger.Info("job deleted", zap.Uint("job_id", id))
	return nil
}

// Dashboard returns the caller's own listings, newest first.
func (s *JobService) Dashboard(ctx context.Context, recruiterID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := s.db.WithContext(ctx).
		Where("recruiter_id = ?", recruiterID).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, apperrors.Internal("fetching dashboard jobs", err)
	}
	return jobs, nil
}

// Companies groups active listings by company name with open-position counts.
func (s *JobService) Companies(ctx context.Context) ([]dtos.CompanyResponse, error) {
	var jobs []models.Job
	err := s.db.WithContext(ctx).
		Order("company_name ASC, created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, apperrors.Internal("fetching company listings", err)
	}

	var companies []dtos.CompanyResponse
	for _, job := range jobs {
		if n := len(companies); n > 0 && companies[n-1].Name == job.CompanyName {
			companies[n-1].Jobs = append(companies[n-1].Jobs, job)
			companies[n-1].OpenPositions++
			continue
		}
		companies = append(companies, dtos.CompanyResponse{
			Name:          job.CompanyName,
			LogoURL:       job.CompanyLogoURL,
			OpenPositions: 1,
			Jobs:          []models.Job{job},
		})
	}
	return companies, nil
}
