package domain

import (
	"fmt"
	"strings"
)

// GeneralField is the error key used for failures that are not tied to a
// single input field.
const GeneralField = "general"

// ErrorKind classifies a FieldError for the HTTP boundary.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindNotFound
	KindForbidden
)

// FieldError is a client-facing failure tagged with the input field it concerns.
type FieldError struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// NewFieldError returns a business validation failure on field.
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Kind: KindValidation, Field: field, Message: message}
}

// NewNotFoundError returns a not-found failure keyed on the general field.
func NewNotFoundError(message string) *FieldError {
	return &FieldError{Kind: KindNotFound, Field: GeneralField, Message: message}
}

// NewForbiddenError returns an authorization failure keyed on the general field.
func NewForbiddenError(message string) *FieldError {
	return &FieldError{Kind: KindForbidden, Field: GeneralField, Message: message}
}

// ValidationErrors collects structural failures found while validating a
// request body. Order is preserved; the boundary collapses duplicates.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Error())
	}
	return strings.Join(parts, "; ")
}

// TokenErrorKind identifies why a token failed verification.
type TokenErrorKind int

const (
	TokenMalformed TokenErrorKind = iota
	TokenSignatureMismatch
	TokenExpired
)

func (k TokenErrorKind) String() string {
	switch k {
	case TokenSignatureMismatch:
		return "signature_mismatch"
	case TokenExpired:
		return "expired"
	default:
		return "malformed"
	}
}

// TokenError is returned when a bearer token cannot be verified.
type TokenError struct {
	Kind TokenErrorKind
	Err  error
}

func (e *TokenError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("token %s", e.Kind)
	}
	return fmt.Sprintf("token %s: %v", e.Kind, e.Err)
}

func (e *TokenError) Unwrap() error { return e.Err }
