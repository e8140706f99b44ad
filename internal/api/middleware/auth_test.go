package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inventory-app/inventory-api/internal/core/domain"
	"github.com/inventory-app/inventory-api/internal/core/service"
)

type stubFinder struct {
	users map[string]*domain.User
	err   error
}

func (s stubFinder) FindByEmail(_ context.Context, email string) (*domain.User, bool, error) {
	if s.err != nil {
		return nil, false, s.err
	}
	u, ok := s.users[email]
	return u, ok, nil
}

var carol = &domain.User{ID: "u-carol", Username: "carol", Email: "carol@example.com", Role: domain.RoleUser}

func newFinder() stubFinder {
	return stubFinder{users: map[string]*domain.User{carol.Email: carol}}
}

// run executes the middleware and reports the status and whether next ran.
func run(t *testing.T, header string, tokens *service.TokenService, finder UserFinder) (int, bool, *domain.User) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var principal *domain.User
	called := false
	handler := Auth(tokens, finder, zerolog.Nop())(func(c echo.Context) error {
		called = true
		principal, _ = PrincipalFrom(c)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec.Code, called, principal
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	signed, err := tokens.Issue(carol.Email)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	code, called, principal := run(t, "Bearer "+signed, tokens, newFinder())
	if code != http.StatusOK || !called {
		t.Fatalf("expected next to run with 200, got %d (called=%v)", code, called)
	}
	if principal == nil || principal.ID != carol.ID {
		t.Fatalf("principal not set, got %+v", principal)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	other := service.NewTokenService("other-secret", time.Hour)

	foreign, _ := other.Issue(carol.Email)
	ghost, _ := tokens.Issue("ghost@example.com")

	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	expiredIssuer := service.NewTokenService("secret", time.Hour, service.WithClock(func() time.Time { return past }))
	expired, _ := expiredIssuer.Issue(carol.Email)

	cases := map[string]string{
		"missing header":   "",
		"wrong scheme":     "Token abc",
		"empty bearer":     "Bearer ",
		"garbage":          "Bearer not-a-token",
		"foreign key":      "Bearer " + foreign,
		"expired":          "Bearer " + expired,
		"unknown identity": "Bearer " + ghost,
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			code, called, _ := run(t, header, tokens, newFinder())
			if called {
				t.Fatalf("next must not run")
			}
			if code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", code)
			}
		})
	}
}

func TestAuthMiddleware_LookupFailure(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	signed, _ := tokens.Issue(carol.Email)

	code, called, _ := run(t, "Bearer "+signed, tokens, stubFinder{err: errors.New("db down")})
	if called {
		t.Fatalf("next must not run")
	}
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
}

func TestPrincipalFrom_Absent(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if _, ok := PrincipalFrom(c); ok {
		t.Fatalf("expected no principal")
	}
}
