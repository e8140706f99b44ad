package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inventory-app/inventory-api/internal/core/domain"
	"github.com/inventory-app/inventory-api/internal/core/ports"
)

// formReader collects typed form values, recording the first parse failure
// per field.
type formReader struct {
	c    echo.Context
	errs domain.ValidationErrors
}

func (r *formReader) has(key string) bool {
	form, err := r.c.FormParams()
	if err != nil {
		return false
	}
	_, ok := form[key]
	return ok
}

func (r *formReader) str(key string) *string {
	if !r.has(key) {
		return nil
	}
	v := strings.TrimSpace(r.c.FormValue(key))
	return &v
}

func (r *formReader) intVal(key, message string) *int {
	s := r.str(key)
	if s == nil || *s == "" {
		return nil
	}
	n, err := strconv.Atoi(*s)
	if err != nil {
		r.fail(key, message)
		return nil
	}
	return &n
}

func (r *formReader) floatVal(key, message string) *float64 {
	s := r.str(key)
	if s == nil || *s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(*s, 64)
	if err != nil {
		r.fail(key, message)
		return nil
	}
	return &f
}

func (r *formReader) fail(field, message string) {
	r.errs = append(r.errs, domain.FieldError{Kind: domain.KindValidation, Field: field, Message: message})
}

func (r *formReader) err() error {
	if len(r.errs) == 0 {
		return nil
	}
	return r.errs
}

// formTooLarge reports a body that hit the request size limit while the
// form was being read.
func formTooLarge(c echo.Context) error {
	_, err := c.MultipartForm()
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge {
		return he
	}
	return nil
}

// formImage returns the optional "image" part. The caller closes it.
func formImage(c echo.Context) (*ports.ImageUpload, func(), error) {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, domain.NewFieldError("image", "Invalid image upload")
	}
	if fh.Size == 0 {
		return nil, func() {}, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, domain.NewFieldError("image", "Invalid image upload")
	}
	return &ports.ImageUpload{Filename: fh.Filename, Size: fh.Size, Content: f}, func() { _ = f.Close() }, nil
}
