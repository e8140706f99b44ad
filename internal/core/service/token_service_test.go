package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inventory-app/inventory-api/internal/core/domain"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func assertTokenErrorKind(t *testing.T, err error, want domain.TokenErrorKind) {
	t.Helper()
	var te *domain.TokenError
	if !errors.As(err, &te) {
		t.Fatalf("expected *domain.TokenError, got %T (%v)", err, err)
	}
	if te.Kind != want {
		t.Fatalf("expected kind %s, got %s (%v)", want, te.Kind, te.Err)
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	for _, subject := range []string{"a@x.com", "user+tag@example.org", "ünïcode@例え.jp"} {
		token, err := svc.Issue(subject)
		if err != nil {
			t.Fatalf("Issue(%q) error: %v", subject, err)
		}
		if parts := strings.Split(token, "."); len(parts) != 3 {
			t.Fatalf("expected three-part token, got %d parts", len(parts))
		}
		got, err := svc.Verify(token)
		if err != nil {
			t.Fatalf("Verify error: %v", err)
		}
		if got != subject {
			t.Fatalf("expected subject %q, got %q", subject, got)
		}
	}
}

func TestTokenService_IssueEmptySubject(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	if _, err := svc.Issue(""); err == nil {
		t.Fatalf("expected error for empty subject")
	}
}

func TestTokenService_ExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: issuedAt}
	svc := NewTokenService("secret", 24*time.Hour, WithClock(clock.Now))

	token, err := svc.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	clock.t = issuedAt.Add(24*time.Hour - time.Second)
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("expected token valid just before expiry, got %v", err)
	}

	clock.t = issuedAt.Add(24*time.Hour + time.Second)
	_, err = svc.Verify(token)
	assertTokenErrorKind(t, err, domain.TokenExpired)
}

func TestTokenService_Leeway(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: issuedAt}
	svc := NewTokenService("secret", time.Hour, WithClock(clock.Now), WithLeeway(time.Minute))

	token, err := svc.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	clock.t = issuedAt.Add(time.Hour + 30*time.Second)
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("expected token accepted within leeway, got %v", err)
	}
}

func TestTokenService_DifferentKey(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = verifier.Verify(token)
	assertTokenErrorKind(t, err, domain.TokenSignatureMismatch)
}

func TestTokenService_TamperedSignature(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	token, err := svc.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Flip the first signature character; the last one may only carry padding bits.
	sigStart := strings.LastIndex(token, ".") + 1
	replacement := byte('A')
	if token[sigStart] == 'A' {
		replacement = 'B'
	}
	tampered := token[:sigStart] + string(replacement) + token[sigStart+1:]

	_, err = svc.Verify(tampered)
	assertTokenErrorKind(t, err, domain.TokenSignatureMismatch)
}

func TestTokenService_TamperedPayload(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	token, err := svc.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	other, err := svc.Issue("mallory@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Splice another subject's payload under the original signature.
	parts := strings.Split(token, ".")
	otherParts := strings.Split(other, ".")
	spliced := parts[0] + "." + otherParts[1] + "." + parts[2]

	_, err = svc.Verify(spliced)
	assertTokenErrorKind(t, err, domain.TokenSignatureMismatch)
}

func TestTokenService_Malformed(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b", "a.b.c", "!!!.???.***"} {
		_, err := svc.Verify(token)
		assertTokenErrorKind(t, err, domain.TokenMalformed)
	}
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	claims := jwt.RegisteredClaims{
		Subject:   "a@x.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	_, err = svc.Verify(unsigned)
	assertTokenErrorKind(t, err, domain.TokenSignatureMismatch)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign hs512: %v", err)
	}
	_, err = svc.Verify(hs512)
	assertTokenErrorKind(t, err, domain.TokenSignatureMismatch)
}

func TestTokenService_RequiresExpiry(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "a@x.com"}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	_, err = svc.Verify(noExp)
	assertTokenErrorKind(t, err, domain.TokenMalformed)
}

func TestTokenService_RequiresSubject(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	_, err = svc.Verify(noSub)
	assertTokenErrorKind(t, err, domain.TokenMalformed)
}
