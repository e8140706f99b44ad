package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inventory-app/inventory-api/internal/core/ports"
)

const (
	msgQuantityNotInteger = "Quantity must be a whole number"
	msgPriceNotNumber     = "Price must be a number"
)

// ProductHandler handles HTTP requests for the caller's products.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /api/products.
//
// @Summary      List the caller's products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        keyword  query     string  false  "Case-insensitive name filter"
// @Success      200      {array}   productResponse
// @Failure      401      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	products, err := h.service.List(c.Request().Context(), principal, c.QueryParam("keyword"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductListResponse(products, principal))
}

// Get handles GET /api/product/:id.
//
// @Summary      Get one of the caller's products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  productResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/product/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	product, err := h.service.Get(c.Request().Context(), principal, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product, principal))
}

// Create handles POST /api/products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string   false  "Idempotency key to prevent duplicate submissions"
// @Param        name             formData  string   true   "Product name"
// @Param        description      formData  string   false  "Description"
// @Param        quantity         formData  integer  true   "Quantity in stock"
// @Param        price            formData  number   true   "Unit price"
// @Param        image            formData  file     false  "JPG, PNG or WEBP image up to 5MB"
// @Success      201              {object}  productResponse
// @Success      200              {object}  productResponse  "Replayed idempotent request"
// @Failure      400              {object}  map[string]string
// @Failure      401              {object}  map[string]string
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := formTooLarge(c); err != nil {
		return err
	}

	form := &formReader{c: c}
	req := createProductRequest{
		Quantity: form.intVal("quantity", msgQuantityNotInteger),
		Price:    form.floatVal("price", msgPriceNotNumber),
	}
	if s := form.str("name"); s != nil {
		req.Name = *s
	}
	if s := form.str("description"); s != nil {
		req.Description = *s
	}
	if err := form.err(); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	image, closeImage, err := formImage(c)
	if err != nil {
		return err
	}
	defer closeImage()

	idempotencyKey := c.Request().Header.Get("Idempotency-Key")
	result, err := h.service.Create(c.Request().Context(), principal, toCreateInput(req, image, idempotencyKey))
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, toProductResponse(result.Product, principal))
}

// Update handles PUT /api/product/:id.
//
// @Summary      Update one of the caller's products
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id           path      string   true   "Product ID"
// @Param        name         formData  string   false  "Product name"
// @Param        description  formData  string   false  "Description"
// @Param        quantity     formData  integer  false  "Quantity in stock"
// @Param        price        formData  number   false  "Unit price"
// @Param        image        formData  file     false  "Replacement image"
// @Success      200          {object}  productResponse
// @Failure      400          {object}  map[string]string
// @Failure      401          {object}  map[string]string
// @Failure      403          {object}  map[string]string
// @Failure      404          {object}  map[string]string
// @Router       /api/product/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := formTooLarge(c); err != nil {
		return err
	}

	form := &formReader{c: c}
	req := updateProductRequest{
		Name:        form.str("name"),
		Description: form.str("description"),
		Quantity:    form.intVal("quantity", msgQuantityNotInteger),
		Price:       form.floatVal("price", msgPriceNotNumber),
	}
	if err := form.err(); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	image, closeImage, err := formImage(c)
	if err != nil {
		return err
	}
	defer closeImage()

	product, err := h.service.Update(c.Request().Context(), principal, c.Param("id"), toUpdateInput(req, image))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(product, principal))
}

// Delete handles DELETE /api/product/:id.
//
// @Summary      Delete one of the caller's products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/product/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), principal, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}
