package response

import (
	"encoding/json"
	"net/http"

	"github.com/insuvit/storefront/internal/errors"
)

// Notice is the transient user-facing notification a UI collaborator
// renders as a toast. Severity is one of info, success, warning, error.
type Notice struct {
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

type APIResponse struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Notice  *Notice        `json:"notice,omitempty"`
	Error   *ErrorResponse `json:"error,omitempty"`
}

type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func WriteJson(w http.ResponseWriter, statusCode int, data any) error {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, data any) {

	WriteJson(w, statusCode, APIResponse{
		Success: true,
		Data:    data,
	})
}

// SuccessWithNotice attaches a toast-style notification to the payload.
func SuccessWithNotice(w http.ResponseWriter, statusCode int, data any, message, severity string) {

	WriteJson(w, statusCode, APIResponse{
		Success: true,
		Data:    data,
		Notice:  &Notice{Message: message, Severity: severity},
	})
}

func Error(w http.ResponseWriter, err error) {

	var statusCode int
	var errorResponse *ErrorResponse

	if appErr, ok := errors.IsAppError(err); ok {

		statusCode = appErr.StatusCode
		errorResponse = &ErrorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
		}

		if appErr.Detail != "" {
			errorResponse.Details = []string{appErr.Detail}
		}

	} else {

		statusCode = http.StatusInternalServerError
		errorResponse = &ErrorResponse{
			Code:    errors.ErrCodeInternal,
			Message: "An unexpected error occurred",
		}

	}

	severity := SeverityError
	if errorResponse.Code == errors.ErrCodeValidation {
		severity = SeverityWarning
	}

	WriteJson(w, statusCode, APIResponse{
		Success: false,
		Notice:  &Notice{Message: errorResponse.Message, Severity: severity},
		Error:   errorResponse,
	})
}
