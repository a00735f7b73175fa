package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// fieldError is one entry of the "details" list in a 400 response. The field
// name is the JSON name of the offending field, so callers can highlight it.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// respondValidationError converts a ShouldBindJSON error into the structured
// 400 body: {"error": "Invalid form data", "details": [{field, message}, ...]}.
// Binding errors that are not field validations (e.g. malformed JSON) fall
// back to a plain error string.
func respondValidationError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	details := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fieldError{
			Field:   fe.Field(),
			Message: validationMessage(fe),
		})
	}

	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid form data",
		"details": details,
	})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "uuid4":
		return "must be a valid id"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or more", fe.Param())
	case "lte":
		return fmt.Sprintf("must be %s or less", fe.Param())
	}
	return fmt.Sprintf("failed '%s' validation", fe.Tag())
}
