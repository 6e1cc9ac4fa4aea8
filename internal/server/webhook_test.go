package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campustech/clubhub/backend/internal/model"
	svix "github.com/svix/svix-webhooks/go"
)

func signedWebhookRequest(t *testing.T, payload []byte) *http.Request {
	t.Helper()

	webhook, err := svix.NewWebhook(testWebhookSecret)
	if err != nil {
		t.Fatalf("failed to construct signer: %v", err)
	}

	messageID := "msg_test_1"
	timestamp := time.Now()
	signature, err := webhook.Sign(messageID, timestamp, payload)
	if err != nil {
		t.Fatalf("failed to sign payload: %v", err)
	}

	request := httptest.NewRequest(http.MethodPost, "/webhooks/identity", bytes.NewReader(payload))
	request.Header.Set("Content-Type", jsonContentType)
	request.Header.Set("svix-id", messageID)
	request.Header.Set("svix-timestamp", fmt.Sprintf("%d", timestamp.Unix()))
	request.Header.Set("svix-signature", signature)
	return request
}

func identityEventPayload(t *testing.T, eventType, externalID, firstName, email string) []byte {
	t.Helper()

	payload := map[string]interface{}{
		"type": eventType,
		"data": map[string]interface{}{
			"id":         externalID,
			"first_name": firstName,
			"email_addresses": []map[string]string{
				{"email_address": email},
			},
		},
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	return encoded
}

func TestWebhookCreatesUserFromSignedEvent(t *testing.T) {
	fixture := newServerFixture(t, &stubVerifier{})

	payload := identityEventPayload(t, "user.created", "idp_ada", "Ada", "ada@club.edu")
	recorder := httptest.NewRecorder()
	fixture.handler.ServeHTTP(recorder, signedWebhookRequest(t, payload))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var stored model.User
	if err := fixture.db.Where("external_id = ?", "idp_ada").First(&stored).Error; err != nil {
		t.Fatalf("failed to load synced user: %v", err)
	}
	if stored.Email != "ada@club.edu" || stored.FirstName != "Ada" {
		t.Fatalf("unexpected synced user %+v", stored)
	}
	if stored.Role != model.RoleUser {
		t.Fatalf("expected default role, got %s", stored.Role)
	}
}

func TestWebhookUpdateKeepsPromotedRole(t *testing.T) {
	fixture := newServerFixture(t, &stubVerifier{})
	member := fixture.seedMember(t, "idp_ada", model.RoleAdmin)

	payload := identityEventPayload(t, "user.updated", member.ExternalID, "Adaline", "ada@alumni.edu")
	recorder := httptest.NewRecorder()
	fixture.handler.ServeHTTP(recorder, signedWebhookRequest(t, payload))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var stored model.User
	if err := fixture.db.Where("external_id = ?", member.ExternalID).First(&stored).Error; err != nil {
		t.Fatalf("failed to load synced user: %v", err)
	}
	if stored.Role != model.RoleAdmin {
		t.Fatalf("expected promotion to survive, got %s", stored.Role)
	}
	if stored.Email != "ada@alumni.edu" || stored.FirstName != "Adaline" {
		t.Fatalf("unexpected synced user %+v", stored)
	}
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	fixture := newServerFixture(t, &stubVerifier{})

	payload := identityEventPayload(t, "user.created", "idp_eve", "Eve", "eve@club.edu")
	request := httptest.NewRequest(http.MethodPost, "/webhooks/identity", bytes.NewReader(payload))
	request.Header.Set("Content-Type", jsonContentType)
	request.Header.Set("svix-id", "msg_forged")
	request.Header.Set("svix-timestamp", fmt.Sprintf("%d", time.Now().Unix()))
	request.Header.Set("svix-signature", "v1,Zm9yZ2VkLXNpZ25hdHVyZQ==")

	recorder := httptest.NewRecorder()
	fixture.handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}

	var count int64
	if err := fixture.db.Model(&model.User{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count users: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected forged event to create nothing, got %d rows", count)
	}
}

func TestWebhookAcknowledgesUnhandledEventTypes(t *testing.T) {
	fixture := newServerFixture(t, &stubVerifier{})

	payload := identityEventPayload(t, "session.created", "idp_ada", "Ada", "ada@club.edu")
	recorder := httptest.NewRecorder()
	fixture.handler.ServeHTTP(recorder, signedWebhookRequest(t, payload))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 ack, got %d", recorder.Code)
	}

	var count int64
	if err := fixture.db.Model(&model.User{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count users: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no sync for unhandled event, got %d rows", count)
	}
}

func TestWebhookRejectsPayloadWithoutEmail(t *testing.T) {
	fixture := newServerFixture(t, &stubVerifier{})

	payload, err := json.Marshal(map[string]interface{}{
		"type": "user.created",
		"data": map[string]interface{}{"id": "idp_ghost"},
	})
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	recorder := httptest.NewRecorder()
	fixture.handler.ServeHTTP(recorder, signedWebhookRequest(t, payload))

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing email, got %d", recorder.Code)
	}
}
