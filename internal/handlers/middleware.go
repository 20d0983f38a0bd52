package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"jobboard-api/internal/apperrors"
	"jobboard-api/internal/models"
)

const (
	ctxSubjectKey = "auth_subject"
	ctxUserKey    = "auth_user"
	requestIDKey  = "request_id"
)

// UserResolver resolves a provider subject to the mirrored local account.
type UserResolver interface {
	GetByClerkID(ctx context.Context, clerkID string) (*models.User, error)
}

// RequestID tags every request with a correlation id.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// RequestLogger logs one line per request with zap fields.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// Authenticate reads the provider-verified subject from the trusted header
// (token verification itself is the auth proxy's job) and attaches the local
// account when one exists. Requests without the header pass through
// unauthenticated; route-level guards decide whether that matters.
func Authenticate(users UserResolver, header string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := c.GetHeader(header)
		if subject == "" {
			c.Next()
			return
		}
		c.Set(ctxSubjectKey, subject)

		user, err := users.GetByClerkID(c.Request.Context(), subject)
		if err != nil {
			if apperrors.AsDomainError(err).Type != apperrors.ErrTypeNotFound {
				logger.Warn("resolving caller failed", zap.String("subject", subject), zap.Error(err))
			}
			c.Next()
			return
		}
		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// RequireSubject rejects requests that carry no authenticated identity.
func RequireSubject() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CallerSubject(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// RequireUser rejects requests whose identity has no mirrored account row.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// CallerSubject returns the provider subject attached to the request.
func CallerSubject(c *gin.Context) (string, bool) {
	subject := c.GetString(ctxSubjectKey)
	return subject, subject != ""
}

// CurrentUser returns the mirrored account attached to the request.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, ok := c.Get(ctxUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// respondError maps a service error to its HTTP envelope. Internal failures
// are logged with their stack; client errors are not.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	domainErr := apperrors.AsDomainError(err)
	if domainErr.HTTPStatus() >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	c.JSON(domainErr.HTTPStatus(), gin.H{"error": domainErr.Message})
}
