package validation

import (
	"fmt"
	"regexp"
)

// JSONSchema describes the shape of an outgoing payload. The submission
// services run the assembled payload map through its wizard's schema before
// any network I/O, so a drifting draft-to-payload mapping fails loudly
// instead of producing a 422 from the scoring service.
type JSONSchema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties,omitempty"`
}

type Property struct {
	Type       string              `json:"type"`
	Nullable   bool                `json:"nullable,omitempty"`
	Minimum    *float64            `json:"minimum,omitempty"`
	Maximum    *float64            `json:"maximum,omitempty"`
	Enum       []string            `json:"enum,omitempty"`
	Pattern    *string             `json:"pattern,omitempty"`
	MinLength  *int                `json:"minLength,omitempty"`
	MaxLength  *int                `json:"maxLength,omitempty"`
	Properties map[string]Property `json:"properties,omitempty"` // nested objects
	Required   []string            `json:"required,omitempty"`   // nested objects
}

type SchemaError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type SchemaResult struct {
	Valid  bool          `json:"valid"`
	Errors []SchemaError `json:"errors,omitempty"`
}

// GetErrorMessages returns a simple list of error messages.
func (sr *SchemaResult) GetErrorMessages() []string {
	messages := make([]string, len(sr.Errors))
	for i, err := range sr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// ValidatePayload validates a payload map against a schema with detailed errors.
func ValidatePayload(payload map[string]interface{}, schema JSONSchema) *SchemaResult {
	errors := []SchemaError{}

	for _, requiredField := range schema.Required {
		if _, exists := payload[requiredField]; !exists {
			errors = append(errors, SchemaError{
				Field:   requiredField,
				Message: "required field missing",
				Code:    "REQUIRED_FIELD_MISSING",
			})
		}
	}

	for fieldName, value := range payload {
		prop, exists := schema.Properties[fieldName]
		if !exists {
			if !schema.AdditionalProperties {
				errors = append(errors, SchemaError{
					Field:   fieldName,
					Message: "field not allowed in schema",
					Code:    "EXTRA_FIELD",
				})
			}
			continue
		}

		if fieldErrors := validateProperty(fieldName, value, prop); len(fieldErrors) > 0 {
			errors = append(errors, fieldErrors...)
		}
	}

	return &SchemaResult{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}

func validateProperty(fieldName string, value interface{}, prop Property) []SchemaError {
	errors := []SchemaError{}

	if value == nil {
		if !prop.Nullable {
			errors = append(errors, SchemaError{
				Field:   fieldName,
				Message: "null not allowed",
				Code:    "NULL_NOT_ALLOWED",
			})
		}
		return errors
	}

	if typeErr := validateType(value, prop.Type); typeErr != nil {
		errors = append(errors, SchemaError{
			Field:   fieldName,
			Message: typeErr.Error(),
			Code:    "INVALID_TYPE",
		})
		return errors // remaining checks assume the right type
	}

	if strVal, ok := value.(string); ok {
		if prop.MinLength != nil && len(strVal) < *prop.MinLength {
			errors = append(errors, SchemaError{
				Field:   fieldName,
				Message: fmt.Sprintf("value must be at least %d characters", *prop.MinLength),
				Code:    "MIN_LENGTH_VIOLATION",
			})
		}
		if prop.MaxLength != nil && len(strVal) > *prop.MaxLength {
			errors = append(errors, SchemaError{
				Field:   fieldName,
				Message: fmt.Sprintf("value must be at most %d characters", *prop.MaxLength),
				Code:    "MAX_LENGTH_VIOLATION",
			})
		}

		if prop.Pattern != nil {
			matched, err := regexp.MatchString(*prop.Pattern, strVal)
			if err != nil || !matched {
				errors = append(errors, SchemaError{
					Field:   fieldName,
					Message: fmt.Sprintf("value must match pattern %s", *prop.Pattern),
					Code:    "PATTERN_MISMATCH",
				})
			}
		}

		if len(prop.Enum) > 0 {
			found := false
			for _, enumVal := range prop.Enum {
				if strVal == enumVal {
					found = true
					break
				}
			}
			if !found {
				errors = append(errors, SchemaError{
					Field:   fieldName,
					Message: fmt.Sprintf("value must be one of %v", prop.Enum),
					Code:    "INVALID_ENUM_VALUE",
				})
			}
		}
	}

	if numVal, ok := toFloat(value); ok {
		if prop.Minimum != nil && numVal < *prop.Minimum {
			errors = append(errors, SchemaError{
				Field:   fieldName,
				Message: fmt.Sprintf("value must be >= %v", *prop.Minimum),
				Code:    "MINIMUM_VIOLATION",
			})
		}
		if prop.Maximum != nil && numVal > *prop.Maximum {
			errors = append(errors, SchemaError{
				Field:   fieldName,
				Message: fmt.Sprintf("value must be <= %v", *prop.Maximum),
				Code:    "MAXIMUM_VIOLATION",
			})
		}
	}

	if objVal, ok := value.(map[string]interface{}); ok && prop.Properties != nil {
		nestedSchema := JSONSchema{
			Type:                 "object",
			Properties:           prop.Properties,
			Required:             prop.Required,
			AdditionalProperties: false,
		}
		nestedResult := ValidatePayload(objVal, nestedSchema)
		for _, nestedErr := range nestedResult.Errors {
			errors = append(errors, SchemaError{
				Field:   fmt.Sprintf("%s.%s", fieldName, nestedErr.Field),
				Message: nestedErr.Message,
				Code:    nestedErr.Code,
			})
		}
	}

	return errors
}

func validateType(value interface{}, expectedType string) error {
	switch expectedType {
	case "string":
		if _, ok := value.(string); !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
	case "number":
		if _, ok := toFloat(value); !ok {
			return fmt.Errorf("expected number, got %T", value)
		}
	case "integer":
		switch value.(type) {
		case int, int32, int64:
		default:
			return fmt.Errorf("expected integer, got %T", value)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("expected boolean, got %T", value)
		}
	case "object":
		if _, ok := value.(map[string]interface{}); !ok {
			return fmt.Errorf("expected object, got %T", value)
		}
	}
	return nil
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
