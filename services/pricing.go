package services

import (
	"fmt"

	"catalog-service/models"
)

// ValidationKind names the shape constraint a payload violated.
type ValidationKind string

const (
	KindShapeMismatch  ValidationKind = "ShapeMismatch"
	KindInvalidEnum    ValidationKind = "InvalidEnum"
	KindInvalidOptions ValidationKind = "InvalidOptions"
	KindInvalidDefault ValidationKind = "InvalidDefault"
)

// ValidationError reports a pricing or attribute payload that does not
// conform to the expected shape. It always maps to a 400 at the boundary.
type ValidationError struct {
	Kind   ValidationKind
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Detail)
}

func shapeMismatch(field, detail string) *ValidationError {
	return &ValidationError{Kind: KindShapeMismatch, Field: field, Detail: detail}
}

func invalidEnum(field, detail string) *ValidationError {
	return &ValidationError{Kind: KindInvalidEnum, Field: field, Detail: detail}
}

func invalidOptions(field, detail string) *ValidationError {
	return &ValidationError{Kind: KindInvalidOptions, Field: field, Detail: detail}
}

func invalidDefault(field, detail string) *ValidationError {
	return &ValidationError{Kind: KindInvalidDefault, Field: field, Detail: detail}
}

// ValidateCategory checks a category definition: every pricing dimension
// carries a recognized price type and a non-empty set of unique option
// labels, at least one dimension is the base price, and each declared
// attribute's default is one of its own options.
func ValidateCategory(c *models.Category) error {
	if c.Name == "" {
		return shapeMismatch("name", "category name is required")
	}
	if len(c.PriceConfiguration) == 0 {
		return invalidOptions("priceConfiguration", "at least one pricing dimension is required")
	}

	hasBase := false
	for key, entry := range c.PriceConfiguration {
		field := "priceConfiguration." + key
		if err := validatePriceType(field, entry.PriceType); err != nil {
			return err
		}
		if entry.PriceType == models.PriceTypeBase {
			hasBase = true
		}
		if len(entry.AvailableOptions) == 0 {
			return invalidOptions(field, "availableOptions must not be empty")
		}
		seen := make(map[string]struct{}, len(entry.AvailableOptions))
		for _, opt := range entry.AvailableOptions {
			if opt == "" {
				return invalidOptions(field, "option labels must be non-empty strings")
			}
			if _, dup := seen[opt]; dup {
				return invalidOptions(field, fmt.Sprintf("duplicate option label %q", opt))
			}
			seen[opt] = struct{}{}
		}
	}
	if !hasBase {
		return invalidOptions("priceConfiguration", `at least one dimension must have priceType "base"`)
	}

	if c.Attributes == nil {
		return shapeMismatch("attributes", "attributes is required")
	}
	for _, attr := range c.Attributes {
		field := "attributes." + attr.Name
		if attr.Name == "" {
			return shapeMismatch("attributes", "attribute name is required")
		}
		switch attr.WidgetType {
		case models.WidgetTypeSwitch, models.WidgetTypeRadio:
			if !containsOption(attr.AvailableOptions, attr.DefaultValue) {
				return invalidDefault(field, fmt.Sprintf("default value %q is not among the available options", attr.DefaultValue))
			}
		default:
			return invalidEnum(field, fmt.Sprintf("%q is an invalid widgetType", attr.WidgetType))
		}
		if len(attr.AvailableOptions) == 0 {
			return invalidOptions(field, "availableOptions must not be empty")
		}
	}
	return nil
}

// ValidateProductPricing checks a product's price configuration against the
// schema declared by its category: keys must be a subset of the category's
// dimensions, and each priced option must be one of the labels the category
// declares for that dimension, with a non-negative price.
func ValidateProductPricing(category *models.Category, pc map[string]models.ProductPriceConfig) error {
	if len(pc) == 0 {
		return shapeMismatch("priceConfiguration", "price configuration is required")
	}
	for key, entry := range pc {
		field := "priceConfiguration." + key
		schema, ok := category.PriceConfiguration[key]
		if !ok {
			return shapeMismatch(field, fmt.Sprintf("%q is not a pricing dimension of category %q", key, category.Name))
		}
		if err := validatePriceType(field, entry.PriceType); err != nil {
			return err
		}
		if len(entry.AvailableOptions) == 0 {
			return invalidOptions(field, "availableOptions must not be empty")
		}
		for label, price := range entry.AvailableOptions {
			if !containsOption(schema.AvailableOptions, label) {
				return invalidOptions(field, fmt.Sprintf("option %q is not declared by the category", label))
			}
			if price < 0 {
				return invalidOptions(field, fmt.Sprintf("option %q must have a non-negative price", label))
			}
		}
	}
	return nil
}

// ValidateProductAttributes checks a product's attribute selections against
// the attributes its category declares.
func ValidateProductAttributes(category *models.Category, attrs []models.ProductAttribute) error {
	if attrs == nil {
		return shapeMismatch("attributes", "attributes is required")
	}
	declared := make(map[string]models.CategoryAttribute, len(category.Attributes))
	for _, a := range category.Attributes {
		declared[a.Name] = a
	}
	for _, attr := range attrs {
		field := "attributes." + attr.Name
		schema, ok := declared[attr.Name]
		if !ok {
			return shapeMismatch(field, fmt.Sprintf("%q is not an attribute of category %q", attr.Name, category.Name))
		}
		switch schema.WidgetType {
		case models.WidgetTypeSwitch, models.WidgetTypeRadio:
			if !containsOption(schema.AvailableOptions, attr.Value) {
				return invalidDefault(field, fmt.Sprintf("value %q is not among the available options", attr.Value))
			}
		}
	}
	return nil
}

func validatePriceType(field string, pt models.PriceType) error {
	switch pt {
	case models.PriceTypeBase, models.PriceTypeAdditional:
		return nil
	default:
		return invalidEnum(field, fmt.Sprintf("%q is an invalid priceType", pt))
	}
}

func containsOption(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}
