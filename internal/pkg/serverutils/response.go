package serverutils

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"qr-dine-be/internal/pkg/apperr"
)

type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

type ErrorBody struct {
	Success bool                   `json:"success"`
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) ErrorBody {
	return ErrorBody{
		Success: false,
		Code:    code,
		Message: message,
	}
}

var validate = validator.New()

// ValidateRequest runs struct-tag validation and converts failures into a
// field-detailed validation error.
func ValidateRequest(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		details := map[string]interface{}{}
		if ok := asValidationErrors(err, &verrs); ok {
			for _, fe := range verrs {
				details[fe.Field()] = fmt.Sprintf("failed on '%s'", fe.Tag())
			}
		}
		return apperr.Validation("request validation failed", details)
	}
	return nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		*target = verrs
		return true
	}
	return false
}
