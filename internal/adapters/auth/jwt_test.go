package auth

import (
	"errors"
	"testing"
	"time"

	"hotelbook/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	tok, err := m.Issue(domain.Identity{UserID: "u1", Pseudo: "alice", Role: domain.RoleEmployee})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	id, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.UserID != "u1" || id.Pseudo != "alice" || id.Role != domain.RoleEmployee {
		t.Fatalf("identity = %+v", id)
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	tok, err := m.Issue(domain.Identity{UserID: "u1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	cases := map[string]string{
		"garbage":           "not-a-token",
		"corrupt signature": tok + "xx",
		"wrong secret":      mustIssue(t, NewTokenManager("other-secret", time.Hour)),
		"expired":           mustIssue(t, NewTokenManager("test-secret", -time.Minute)),
	}
	for name, bad := range cases {
		if _, err := m.Verify(bad); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("%s: err = %v, want ErrUnauthorized", name, err)
		}
	}
}

func mustIssue(t *testing.T, m *TokenManager) string {
	t.Helper()
	tok, err := m.Issue(domain.Identity{UserID: "u1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return tok
}
