package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"jobboard-api/internal/apperrors"
	"jobboard-api/internal/models"
	"jobboard-api/internal/webhooks"
)

// UserService mirrors identity-provider accounts into local user rows.
type UserService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewUserService(db *gorm.DB, logger *zap.Logger) *UserService {
	return &UserService{
		db:     db,
		logger: logger,
	}
}

// GetByClerkID resolves the local account for a provider subject.
func (s *UserService) GetByClerkID(ctx context.Context, clerkID string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("clerk_id = ?", clerkID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("user not found", err)
	}
	if err != nil {
		return nil, apperrors.Internal("fetching user", err)
	}
	return &user, nil
}

// HandleEvent mirrors one provider lifecycle event. Unknown event types are
// acknowledged without effect so the provider does not redeliver them.
func (s *UserService) HandleEvent(ctx context.Context, eventType string, data webhooks.UserData) error {
	switch eventType {
	case webhooks.EventUserCreated:
		return s.createUser(ctx, data)
	case webhooks.EventUserUpdated:
		return s.updateUser(ctx, data)
	case webhooks.EventUserDeleted:
		return s.deleteUser(ctx, data)
	default:
		s.logger.Debug("ignoring identity event", zap.String("type", eventType))
		return nil
	}
}

func (s *UserService) createUser(ctx context.Context, data webhooks.UserData) error {
	if data.ID == "" {
		return apperrors.InvalidInput("identity event without subject id", nil)
	}

	user := models.User{
		ClerkID: data.ID,
		Email:   data.PrimaryEmail(),
		Name:    data.FullName(),
		Role:    models.RoleJobSeeker,
	}
	err := s.db.WithContext(ctx).
		Where(models.User{ClerkID: data.ID}).
		FirstOrCreate(&user).Error
	if err != nil {
		return apperrors.Internal("creating user", err)
	}

	s.logger.Info("user mirrored", zap.String("clerk_id", data.ID))
	return nil
}

func (s *UserService) updateUser(ctx context.Context, data webhooks.UserData) error {
	if data.ID == "" {
		return apperrors.InvalidInput("identity event without subject id", nil)
	}

	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("clerk_id = ?", data.ID).
		Updates(map[string]interface{}{
			"email": data.PrimaryEmail(),
			"name":  data.FullName(),
		}).Error
	if err != nil {
		return apperrors.Internal(fmt.Sprintf("updating user %s", data.ID), err)
	}

	s.logger.Info("user updated", zap.String("clerk_id", data.ID))
	return nil
}

func (s *UserService) deleteUser(ctx context.Context, data webhooks.UserData) error {
	if data.ID == "" {
		return apperrors.InvalidInput("identity event without subject id", nil)
	}

	err := s.db.WithContext(ctx).
		Where("clerk_id = ?", data.ID).
		Delete(&models.User{}).Error
	if err != nil {
		return apperrors.Internal(fmt.Sprintf("deleting user %s", data.ID), err)
	}

	s.logger.Info("user deleted", zap.String("clerk_id", data.ID))
	return nil
}
