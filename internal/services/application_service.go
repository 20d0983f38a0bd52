package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"jobboard-api/internal/apperrors"
	"jobboard-api/internal/dtos"
	"jobboard-api/internal/mailer"
	"jobboard-api/internal/models"
)

type ApplicationService struct {
	db     *gorm.DB
	mail   mailer.Mailer
	logger *zap.Logger
}

func NewApplicationService(db *gorm.DB, mail mailer.Mailer, logger *zap.Logger) *ApplicationService {
	return &ApplicationService{
		db:     db,
		mail:   mail,
		logger: logger,
	}
}

// Apply submits an application for a listing. Only job seekers may apply and
// each may apply to a listing once. The recruiter notification is best
// effort: a delivery failure never fails the application.
func (s *ApplicationService) Apply(ctx context.Context, jobID uint, applicant *models.User, req *dtos.ApplicationRequest) (*models.Application, error) {
	if applicant.Role != models.RoleJobSeeker {
		return nil, apperrors.Forbidden("only job seekers can apply for jobs", nil)
	}

	var job models.Job
	err := s.db.WithContext(ctx).First(&job, jobID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("job not found", err)
	}
	if err != nil {
		return nil, apperrors.Internal("fetching job", err)
	}

	var existing models.Application
	err = s.db.WithContext(ctx).
		Where("job_id = ? AND applicant_id = ?", jobID, applicant.ID).
		First(&existing).Error
	if err == nil {
		return nil, apperrors.InvalidInput("you have already applied for this job", nil)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("checking existing application", err)
	}

	req.Normalize()
	application := models.Application{
		JobID:       jobID,
		ApplicantID: applicant.ID,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
		Status:      models.ApplicationPending,
	}
	if err := s.db.WithContext(ctx).Create(&application).Error; err != nil {
		return nil, apperrors.Internal("creating application", err)
	}

	s.notifyRecruiter(ctx, &job, applicant, &application)

	application.Job = job
	application.Applicant = *applicant
	return &application, nil
}

func (s *ApplicationService) notifyRecruiter(ctx context.Context, job *models.Job, applicant *models.User, application *models.Application) {
	if s.mail == nil || job.ContactEmail == "" {
		return
	}

	msg := mailer.Message{
		To:        job.ContactEmail,
		Subject:   fmt.Sprintf("New Application for %s", job.Title),
		FromName:  applicant.Name,
		FromEmail: applicant.Email,
		Body: fmt.Sprintf(
			"A new job application has been received.\n\nJob Title: %s\nJob ID: %d\n\nApplicant Name: %s\nApplicant Email: %s\n\nCover Letter: %s",
			job.Title, job.ID, applicant.Name, applicant.Email, application.CoverLetter,
		),
	}
	if err := s.mail.Send(ctx, msg); err != nil {
		s.logger.Warn("application notification failed",
			zap.Uint("job_id", job.ID),
			zap.Uint("application_id", application.ID),
			zap.Error(err),
		)
	}
}

// ListForUser returns the applications visible to the caller: job seekers see
// their own, recruiters see applications to their listings, optionally
// narrowed to one owned listing.
func (s *ApplicationService) ListForUser(ctx context.Context, user *models.User, jobID *uint) ([]models.Application, error) {
	q := s.db.WithContext(ctx).
		Preload("Job").
		Preload("Applicant").
		Order("applied_at DESC")

	switch user.Role {
	case models.RoleJobSeeker:
		q = q.Where("applicant_id = ?", user.ID)
	case models.RoleRecruiter:
		if jobID != nil {
			var job models.Job
			err := s.db.WithContext(ctx).First(&job, *jobID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("job not found", err)
			}
			if err != nil {
				return nil, apperrors.Internal("fetching job", err)
			}
			if job.RecruiterID != user.ID {
				return nil, apperrors.Forbidden("you can only view applications to your own jobs", nil)
			}
			q = q.Where("job_id = ?", *jobID)
		} else {
			ownJobs := s.db.Model(&models.Job{}).Select("id").Where("recruiter_id = ?", user.ID)
			q = q.Where("job_id IN (?)", ownJobs)
		}
	default:
		return nil, apperrors.Forbidden("unknown role", nil)
	}

	var applications []models.Application
	if err := q.Find(&applications).Error; err != nil {
		return nil, apperrors.Internal("fetching applications", err)
	}
	return applications, nil
}
