package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inventory-app/inventory-api/internal/core/domain"
	"github.com/inventory-app/inventory-api/internal/core/ports"
	"github.com/inventory-app/inventory-api/internal/pkg/metrics"
)

const principalKey = "principal"

// UserFinder loads the identity a token was issued for.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, bool, error)
}

// Auth verifies the bearer token, loads the user it names and stores it as
// the request principal. Requests without a valid principal never reach next.
func Auth(tokens ports.TokenService, users UserFinder, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing or invalid authorization header")
			}

			email, err := tokens.Verify(raw)
			if err != nil {
				var te *domain.TokenError
				kind := domain.TokenMalformed
				if errors.As(err, &te) {
					kind = te.Kind
				}
				metrics.TokenVerificationsTotal.WithLabelValues(kind.String()).Inc()
				log.Warn().Str("reason", kind.String()).Str("path", c.Path()).Msg("token rejected")
				if kind == domain.TokenExpired {
					return echo.NewHTTPError(http.StatusUnauthorized, "Token has expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			user, found, err := users.FindByEmail(c.Request().Context(), email)
			if err != nil {
				return err
			}
			if !found {
				metrics.TokenVerificationsTotal.WithLabelValues("unknown_subject").Inc()
				log.Warn().Str("email", email).Msg("token subject no longer exists")
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			c.Set(principalKey, user)
			return next(c)
		}
	}
}

// PrincipalFrom returns the user stored by Auth, if any.
func PrincipalFrom(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(principalKey).(*domain.User)
	return user, ok && user != nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
