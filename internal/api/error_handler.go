package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inventory-app/inventory-api/internal/core/domain"
)

const msgInternal = "Something went wrong. Please try again."

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that renders every
// failure as a flat {"<field>": "<message>"} object. Unexpected errors are
// logged with their cause and reported with a generic message.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := Normalize(err)
		if code >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

// Normalize maps err to a status code and a field-keyed error body. When the
// same field fails more than once the last message wins.
func Normalize(err error) (int, map[string]string) {
	var ve domain.ValidationErrors
	if errors.As(err, &ve) {
		body := make(map[string]string, len(ve))
		for _, fe := range ve {
			body[fe.Field] = fe.Message
		}
		return http.StatusBadRequest, body
	}

	var fe *domain.FieldError
	if errors.As(err, &fe) {
		return statusFor(fe.Kind), map[string]string{fe.Field: fe.Message}
	}

	// Echo's own errors (auth gate, bind failures, 404 from router, body limit).
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
		return he.Code, map[string]string{domain.GeneralField: fmt.Sprintf("%v", he.Message)}
	}

	return http.StatusInternalServerError, map[string]string{domain.GeneralField: msgInternal}
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}
