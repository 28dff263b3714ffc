package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/aws/aws-lambda-go/events"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/api/response"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
)

// RecoveryMiddleware turns panics and returned errors into JSON error responses
type RecoveryMiddleware struct{}

// NewRecoveryMiddleware creates a new recovery middleware
func NewRecoveryMiddleware() RecoveryMiddleware {
	return RecoveryMiddleware{}
}

// Handle handles the recovery middleware
func (m RecoveryMiddleware) Handle(next APIGatewayHandler) APIGatewayHandler {
	return func(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, err error) {
		requestID := request.RequestContext.RequestID

		defer func() {
			if r := recover(); r != nil {
				logger.Error("PANIC", "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
				resp = response.Error(errors.NewInternalError("An unexpected error occurred", fmt.Errorf("panic: %v", r)), requestID)
				err = nil
			}
		}()

		resp, err = next(ctx, logger, request)
		if err != nil {
			appErr := response.AsAppError(err)
			if appErr.StatusCode >= 500 || appErr.StatusCode == 0 {
				logger.Error("request failed", "code", appErr.Code, "error", err)
			} else {
				logger.Warn("request rejected", "code", appErr.Code, "message", appErr.Message)
			}
			return response.Error(appErr, requestID), nil
		}
		return resp, nil
	}
}
