package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"catalog-service/models"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Allowed image content types
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// CreateProductForm is the multipart payload for product create and update.
// priceConfiguration and attributes arrive as JSON strings alongside the
// image part and are parsed into their typed shapes here.
type CreateProductForm struct {
	Name               string `form:"name" validate:"required"`
	Description        string `form:"description" validate:"required"`
	TenantID           string `form:"tenantId" validate:"required"`
	CategoryID         string `form:"categoryId" validate:"required"`
	IsPublish          bool   `form:"isPublish"`
	PriceConfiguration string `form:"priceConfiguration" validate:"required"`
	Attributes         string `form:"attributes" validate:"required"`
}

// CreateToppingForm is the multipart payload for topping create and update.
type CreateToppingForm struct {
	Name      string `form:"name" validate:"required"`
	Price     string `form:"price" validate:"required"`
	TenantID  string `form:"tenantId" validate:"required"`
	IsPublish *bool  `form:"isPublish"`
}

// RequestValidator handles all input validation
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(),
	}
}

// ParsePagination parses the page and limit query parameters, falling back
// to page 1 and page size 10 on anything unusable.
func (rv *RequestValidator) ParsePagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	return page, limit
}

// ParseProductForm binds and validates the multipart product payload,
// including the JSON-encoded pricing and attribute fields.
func (rv *RequestValidator) ParseProductForm(c *gin.Context) (services.ProductInput, error) {
	var form CreateProductForm
	if err := c.ShouldBind(&form); err != nil {
		return services.ProductInput{}, fmt.Errorf("invalid form data: %w", err)
	}
	if err := rv.validate.Struct(&form); err != nil {
		return services.ProductInput{}, fmt.Errorf("validation failed: %w", err)
	}

	var pc map[string]models.ProductPriceConfig
	if err := json.Unmarshal([]byte(form.PriceConfiguration), &pc); err != nil {
		return services.ProductInput{}, errors.New("priceConfiguration must be a JSON object")
	}
	var attrs []models.ProductAttribute
	if err := json.Unmarshal([]byte(form.Attributes), &attrs); err != nil {
		return services.ProductInput{}, errors.New("attributes must be a JSON array")
	}

	return services.ProductInput{
		Name:               form.Name,
		Description:        form.Description,
		TenantID:           form.TenantID,
		CategoryID:         form.CategoryID,
		IsPublish:          form.IsPublish,
		PriceConfiguration: pc,
		Attributes:         attrs,
	}, nil
}

// ParseToppingForm binds and validates the multipart topping payload.
func (rv *RequestValidator) ParseToppingForm(c *gin.Context) (services.ToppingInput, error) {
	var form CreateToppingForm
	if err := c.ShouldBind(&form); err != nil {
		return services.ToppingInput{}, fmt.Errorf("invalid form data: %w", err)
	}
	if err := rv.validate.Struct(&form); err != nil {
		return services.ToppingInput{}, fmt.Errorf("validation failed: %w", err)
	}

	return services.ToppingInput{
		Name:      form.Name,
		Price:     form.Price,
		TenantID:  form.TenantID,
		IsPublish: form.IsPublish,
	}, nil
}

// ReadImage pulls the "image" part out of the multipart form. required
// controls whether a missing part is an error (create) or means "keep the
// current image" (update). The size cap is checked before the payload is
// read into memory.
func (rv *RequestValidator) ReadImage(c *gin.Context, required bool) (*services.ImageUpload, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		if !required {
			return nil, nil
		}
		return nil, errors.New("product image is required")
	}

	if fileHeader.Size > MaxImageSize {
		return nil, fmt.Errorf("image exceeds the %d KiB limit", MaxImageSize/1024)
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "" && !allowedImageTypes[contentType] {
		return nil, errors.New("image must be jpeg, png or webp")
	}

	data, err := readAll(fileHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return &services.ImageUpload{
		ContentType: contentType,
		Data:        data,
	}, nil
}

func readAll(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(io.LimitReader(file, MaxImageSize+1))
}
