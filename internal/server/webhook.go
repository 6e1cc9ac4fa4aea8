package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/campustech/clubhub/backend/internal/users"
	"github.com/gin-gonic/gin"
	svix "github.com/svix/svix-webhooks/go"
	"go.uber.org/zap"
)

const (
	webhookEventUserCreated = "user.created"
	webhookEventUserUpdated = "user.updated"
)

type identityWebhookPayload struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		FirstName      string `json:"first_name"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

// handleIdentityWebhook syncs the local user table from signed user-lifecycle
// events. It is the only writer of user rows besides the member's own profile
// update.
func (h *httpHandler) handleIdentityWebhook(c *gin.Context) {
	if h.webhookSecret == "" {
		h.logger.Error("identity webhook secret not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook_not_configured"})
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_body"})
		return
	}

	webhook, err := svix.NewWebhook(h.webhookSecret)
	if err != nil {
		h.logger.Error("identity webhook verifier construction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook_not_configured"})
		return
	}
	if err := webhook.Verify(payload, c.Request.Header); err != nil {
		h.logger.Warn("identity webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_signature"})
		return
	}

	var event identityWebhookPayload
	if err := json.Unmarshal(payload, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	if event.Type != webhookEventUserCreated && event.Type != webhookEventUserUpdated {
		// Other lifecycle events are acknowledged without effect.
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	email := ""
	if len(event.Data.EmailAddresses) > 0 {
		email = event.Data.EmailAddresses[0].EmailAddress
	}

	if _, err := h.users.Sync(c.Request.Context(), users.SyncInput{
		ExternalID: event.Data.ID,
		Email:      email,
		FirstName:  event.Data.FirstName,
	}); err != nil {
		if errors.Is(err, users.ErrInvalidSync) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing_email_or_external_id"})
			return
		}
		h.logger.Error("identity webhook sync failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sync_failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
