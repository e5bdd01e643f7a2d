package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/insuvit/storefront/internal/api/middleware"
	"github.com/insuvit/storefront/internal/utils/response"
)

func DecodeJSONBody(r *http.Request, dest any) error {

	if r.Body == nil {
		return errors.New("request body is empty")
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dest); err != nil {

		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}

		return fmt.Errorf("invalid request body: %w", err)
	}

	return nil
}

func ValidateStruct(validate *validator.Validate, dest any) error {

	if err := validate.Struct(dest); err != nil {

		var validationErrors validator.ValidationErrors

		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			first := validationErrors[0]

			return fmt.Errorf("field '%s' failed on the '%s' rule", first.Field(), first.Tag())
		}

		return err
	}

	return nil
}

// ParseAndValidate decodes the body into dest and runs struct validation,
// writing the error response itself when either step fails.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	logger := middleware.LoggerFromContext(r.Context())

	if err := DecodeJSONBody(r, dest); err != nil {
		logger.Warn("Invalid request", "error", err.Error())
		response.WriteJson(w, http.StatusBadRequest, response.APIResponse{
			Success: false,
			Error:   &response.ErrorResponse{Code: "BAD_REQUEST", Message: err.Error()},
		})

		return false
	}

	if err := ValidateStruct(validate, dest); err != nil {
		logger.Warn("Validation failed", "error", err.Error())
		response.WriteJson(w, http.StatusBadRequest, response.APIResponse{
			Success: false,
			Notice:  &response.Notice{Message: err.Error(), Severity: response.SeverityWarning},
			Error:   &response.ErrorResponse{Code: "VALIDATION_ERROR", Message: err.Error()},
		})

		return false
	}

	return true
}
