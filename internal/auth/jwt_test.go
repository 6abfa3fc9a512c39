package auth

import (
	"testing"
	"time"

	"github.com/devnotex/devnotex/internal/apperr"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", 30*time.Minute)

	token, err := m.Generate("user-123")

	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	userID, err := m.Verify(token)

	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if userID != "user-123" {
		t.Errorf("Verify() userID = %q, want %q", userID, "user-123")
	}
}

func TestVerifyRejects(t *testing.T) {
	m := NewTokenManager("test-secret", 30*time.Minute)

	expired := NewTokenManager("test-secret", -time.Minute)
	expiredToken, err := expired.Generate("user-123")

	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	otherSecret := NewTokenManager("other-secret", 30*time.Minute)
	forgedToken, err := otherSecret.Generate("user-123")

	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"expired", expiredToken},
		{"wrong secret", forgedToken},
		{"malformed", "not.a.token"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Verify(tt.token)

			if err == nil {
				t.Fatal("Verify() succeeded, want error")
			}

			if kind := apperr.KindOf(err); kind != apperr.Unauthorized {
				t.Errorf("Verify() error kind = %v, want Unauthorized", kind)
			}
		})
	}
}
