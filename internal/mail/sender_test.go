package mail

import (
	"strings"
	"testing"

	"github.com/udmdigital/lead-crm-api/internal/config"
)

func TestRenderResetBody(t *testing.T) {
	body, err := RenderResetBody("tok-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(body, "tok-123") {
		t.Fatalf("expected token in body, got %s", body)
	}
}

func TestRenderResetBody_EscapesMarkup(t *testing.T) {
	body, err := RenderResetBody(`<script>alert("x")</script>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(body, "<script>") {
		t.Fatalf("expected markup to be escaped, got %s", body)
	}
}

func TestSendPasswordReset_Unconfigured(t *testing.T) {
	sender := NewEmailSender(config.SMTPConfig{})
	if err := sender.SendPasswordReset("user@example.com", "tok"); err == nil {
		t.Fatalf("expected error when smtp is not configured")
	}
}
