package exceptions

import (
	"errors"
	"medibook-service/internal/pkg/constvars"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BuildValidationIssues turns validator errors into field issues. Field names
// are the json names registered on the validator.
func BuildValidationIssues(err error) []Issue {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	issues := make([]Issue, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		issues = append(issues, Issue{
			Field:   fieldErr.Field(),
			Message: formatValidationMessage(fieldErr),
		})
	}
	return issues
}

func FormatFirstValidationError(err error) string {
	issues := BuildValidationIssues(err)
	if len(issues) == 0 {
		return constvars.ErrDevInvalidInput
	}
	return issues[0].Field + " " + issues[0].Message
}

func formatValidationMessage(fieldErr validator.FieldError) string {
	tag := fieldErr.Tag()
	customMessage, ok := constvars.CustomValidationErrorMessages[tag]
	if !ok {
		return "is invalid"
	}

	if constvars.TagsWithParams[tag] {
		param := fieldErr.Param()
		if tag == "oneof" {
			param = strings.Join(strings.Fields(param), ", ")
		}
		customMessage = strings.Replace(customMessage, "%s", param, 1)
	}
	return customMessage
}
