package types

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// NotFound builds the 404 variant of CustomError.
func NotFound(message string) *CustomError {
	return &CustomError{Code: fiber.StatusNotFound, Message: message, Type: "notfound"}
}

// Forbidden builds the 403 variant of CustomError.
func Forbidden(message string) *CustomError {
	return &CustomError{Code: fiber.StatusForbidden, Message: message, Type: "authorization"}
}

// Validation builds the 400 variant of CustomError.
func Validation(message string) *CustomError {
	return &CustomError{Code: fiber.StatusBadRequest, Message: message, Type: "validation"}
}

// AsCustom unwraps err to a CustomError if it is one.
func AsCustom(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
