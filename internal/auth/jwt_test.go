package auth

import (
	"context"
	"testing"
	"time"

	"trainingLog/internal/testutil"
)

const testSecret = "test-secret"

func TestIssueAndParseToken(t *testing.T) {
	tok, exp, err := IssueToken(testSecret, "alice", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if time.Until(exp) < 59*time.Minute {
		t.Fatalf("unexpected expiry %v", exp)
	}
	p, err := ParseToken(tok, testSecret)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if p.Username != "alice" {
		t.Fatalf("principal mismatch: %+v", p)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	tok := testutil.GenerateJWTHS256(t, testSecret, "bob", time.Minute)
	if _, err := ParseToken(tok, "wrong"); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
}

func TestParseToken_Expired(t *testing.T) {
	tok := testutil.GenerateJWTHS256(t, testSecret, "bob", -time.Minute)
	if _, err := ParseToken(tok, testSecret); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestParseToken_ClaimsValidation(t *testing.T) {
	// Missing name -> invalid
	tok := testutil.GenerateJWTHS256(t, testSecret, "", 0)
	if _, err := ParseToken(tok, testSecret); err == nil {
		t.Fatalf("expected invalid claims error")
	}
	if _, _, err := IssueToken("", "alice", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestPrincipalContext(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Fatalf("empty context should carry no principal")
	}
	ctx := WithPrincipal(context.Background(), &Principal{Username: "carol"})
	p, ok := FromContext(ctx)
	if !ok || p.Username != "carol" {
		t.Fatalf("principal not found in context: %+v", p)
	}
}
