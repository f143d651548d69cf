package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	templates = map[string]string{
		"required": "{field} is required",
		"gte":      "{field} must be greater than or equal to {param}",
		"lte":      "{field} must be less than or equal to {param}",
		"gt":       "{field} must be greater than {param}",
		"oneof":    "{field} must be one of {param}",
		"max":      "{field} must be less than or equal to {param}",
		"min":      "{field} must be greater than or equal to {param}",
		"email":    "{field} must be a valid email address",
		"isodate":  "{field} must be a date in YYYY-MM-DD format",
		"roomtype": "{field} must be a lowercase room type code",
		"uuid":     "{field} must be a valid UUID",
		"e164":     "{field} must be a valid phone number",
		"len":      "{field} must be exactly {param} characters long",

		"mimetypes":        "{field} must be one of {param}",
		"maxfilesize":      "{field} must not exceed {param} MB",
		"required_with":    "{field} is required together with {param}",
		"required_without": "{field} is required when {param} is missing",
		"nefield":          "{field} must differ from {param}",
	}
)

// messages turns every field violation into a readable line, in field order.
func messages(err error) []string {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return []string{err.Error()}
	}

	result := make([]string, 0, len(valErrors))

	for _, valErr := range valErrors {
		msg := templates[valErr.Tag()]
		if msg == "" {
			result = append(result, valErr.Error())

			continue
		}

		msg = strings.ReplaceAll(msg, "{field}", valErr.Field())
		msg = strings.ReplaceAll(msg, "{param}", valErr.Param())

		result = append(result, msg)
	}

	return result
}
