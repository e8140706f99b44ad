package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/inventory-app/inventory-api/internal/core/domain"
)

// bcrypt ignores everything past 72 bytes, so longer passwords are refused.
const maxPasswordBytes = 72

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("pwbytes", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= maxPasswordBytes
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. Failures are returned as
// domain.ValidationErrors keyed by the request field name.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			out := make(domain.ValidationErrors, 0, len(ve))
			for _, fe := range ve {
				out = append(out, domain.FieldError{
					Kind:    domain.KindValidation,
					Field:   fe.Field(),
					Message: fieldError(fe),
				})
			}
			return out
		}
		return err
	}
	return nil
}

var fieldMessages = map[string]string{
	"username.required": "Username is required",
	"username.notblank": "Username is required",
	"username.max":      "Username must not exceed 20 characters",
	"email.required":    "Email is required",
	"email.notblank":    "Email is required",
	"email.email":       "Email is not valid",
	"email.max":         "Email must not exceed 50 characters",
	"password.required": "Password is required",
	"password.notblank": "Password is required",
	"password.min":      "Password must be at least 6 characters",
	"password.pwbytes":  "Password must not exceed 72 bytes",
	"name.required":     "Product name is required",
	"name.notblank":     "Product name is required",
	"name.max":          "Product name must not exceed 100 characters",
	"description.max":   "Description must not exceed 500 characters",
	"quantity.required": "Quantity is required",
	"quantity.gte":      "Quantity cannot be negative",
	"price.required":    "Price is required",
	"price.gte":         "Price must be greater than 0",
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}

	field := strings.ToUpper(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
