package response

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success          bool             `json:"success"`
	Error            string           `json:"error"`
	ErrorDescription ErrorDescription `json:"error_description"`
	Metadata         ResponseMetadata `json:"metadata"`
}

// ErrorDescription represents the error details
type ErrorDescription struct {
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// AsAppError returns the AppError in err's chain, or wraps err as an
// internal error. Internal details never reach the client message.
func AsAppError(err error) errors.AppError {
	var appErr errors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return errors.NewInternalError("An unexpected error occurred", err)
}

func newErrorResponse(appErr errors.AppError, requestID string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   appErr.Code,
		ErrorDescription: ErrorDescription{
			Message: appErr.Message,
			Details: appErr.Details,
		},
		Metadata: ResponseMetadata{
			Version:   "1.0",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			RequestID: requestID,
		},
	}
}

// Error creates an error response
func Error(appErr errors.AppError, requestID string) events.APIGatewayProxyResponse {
	status := appErr.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}

	body, err := json.Marshal(newErrorResponse(appErr, requestID))
	if err != nil {
		// Fallback for JSON marshaling errors
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Body:       `{"success":false,"error":"INTERNAL_ERROR","error_description":{"message":"Failed to marshal error response"}}`,
			Headers:    DefaultHeaders(),
		}
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Body:       string(body),
		Headers:    DefaultHeaders(),
	}
}

// FromError creates an error response for any error
func FromError(err error, requestID string) events.APIGatewayProxyResponse {
	return Error(AsAppError(err), requestID)
}

// BadRequest creates a bad request error response
func BadRequest(message string, requestID string) events.APIGatewayProxyResponse {
	return Error(errors.NewValidationError(message), requestID)
}

// NotFound creates a not found error response
func NotFound(message string, requestID string) events.APIGatewayProxyResponse {
	return Error(errors.NewNotFoundError(message), requestID)
}

// AuthenticationError creates an authentication error response
func AuthenticationError(message string, requestID string) events.APIGatewayProxyResponse {
	return Error(errors.NewAuthenticationError(message), requestID)
}

// WriteError writes an error response to an HTTP response writer
func WriteError(w http.ResponseWriter, err error) {
	appErr := AsAppError(err)
	status := appErr.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}

	for key, value := range DefaultHeaders() {
		w.Header().Set(key, value)
	}
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(newErrorResponse(appErr, ""))
}
