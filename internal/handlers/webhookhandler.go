package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobboard-api/internal/webhooks"
)

type IdentityEventSink interface {
	HandleEvent(ctx context.Context, eventType string, data webhooks.UserData) error
}

// WebhookHandler receives identity-provider lifecycle events and mirrors
// them into local account rows.
type WebhookHandler struct {
	Verifier webhooks.Verifier
	Users    IdentityEventSink
	Logger   *zap.Logger
}

func NewWebhookHandler(verifier webhooks.Verifier, users IdentityEventSink, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		Verifier: verifier,
		Users:    users,
		Logger:   logger,
	}
}

// HandleIdentityEvent is POST /webhooks/identity. The signature check is
// delegated to the provider's signing library; anything unverifiable is a 400.
func (h *WebhookHandler) HandleIdentityEvent(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read webhook payload"})
		return
	}

	if err := h.Verifier.Verify(payload, c.Request.Header); err != nil {
		h.Logger.Warn("webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook signature"})
		return
	}

	eventType, data, err := webhooks.ParseUserEvent(payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed webhook payload"})
		return
	}

	if err := h.Users.HandleEvent(c.Request.Context(), eventType, data); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Webhook processed successfully"})
}
