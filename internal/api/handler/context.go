package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inventory-app/inventory-api/internal/api/middleware"
	"github.com/inventory-app/inventory-api/internal/core/domain"
)

// ctxPrincipal returns the user stored by the Auth middleware. Its absence
// means the route was registered without the middleware.
func ctxPrincipal(c echo.Context) (*domain.User, error) {
	user, ok := middleware.PrincipalFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}
	return user, nil
}

// bindAndValidate decodes the request into req and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.NewFieldError(domain.GeneralField, "Invalid request payload")
	}
	return c.Validate(req)
}
