package response

import (
	"errors"
	"net/http"
	"strings"

	apperrors "vendeya/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// The VendeYa wire convention: success responses are the JSON payload
// directly; failures carry {"error": string} with a non-2xx status.

type ErrorBody struct {
	Error string `json:"error"`
}

func JSON(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

func Error(c echo.Context, err error) error {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, ErrorBody{Error: validationMessage(validationErr)})
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return c.JSON(appErr.Status, ErrorBody{Error: appErr.Message})
	}

	return c.JSON(http.StatusInternalServerError, ErrorBody{Error: "Error interno del servidor"})
}

func validationMessage(validationErr validator.ValidationErrors) string {
	for _, err := range validationErr {
		field := strings.ToLower(err.Field())
		switch err.Tag() {
		case "required":
			return field + " is required"
		case "email":
			return field + " must be a valid email address"
		case "min":
			return field + " must be at least " + err.Param()
		case "max":
			return field + " must be at most " + err.Param()
		case "gt":
			return field + " must be greater than " + err.Param()
		case "gte":
			return field + " must be at least " + err.Param()
		case "oneof":
			return field + " must be one of: " + err.Param()
		case "eqfield":
			return field + " must match " + strings.ToLower(err.Param())
		default:
			return field + " is invalid"
		}
	}
	return "Invalid input data"
}
