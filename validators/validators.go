package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Check runs struct-tag validation and returns a field -> message map,
// or nil when the struct is valid.
func Check(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"request": "Invalid request data!"}
	}

	fields := make(map[string]string)
	for _, e := range verrs {
		fields[lowerFirst(e.Field())] = message(e)
	}
	return fields
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required!"
	case "email":
		return "Must be a valid email address!"
	case "min":
		return "Must be at least " + e.Param() + " characters!"
	case "max":
		return "Must be at most " + e.Param() + " characters!"
	case "gte":
		return "Must be at least " + e.Param() + "!"
	case "lte":
		return "Must be at most " + e.Param() + "!"
	case "gt":
		return "Must be greater than " + e.Param() + "!"
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ") + "!"
	default:
		return "Invalid value!"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
