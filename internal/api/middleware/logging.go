package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
)

// LoggingMiddleware is a middleware for logging requests and responses
type LoggingMiddleware struct{}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware() LoggingMiddleware {
	return LoggingMiddleware{}
}

// Handle handles the logging middleware
func (m LoggingMiddleware) Handle(next APIGatewayHandler) APIGatewayHandler {
	return func(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		startTime := time.Now()
		logger = logger.With("requestId", request.RequestContext.RequestID)

		logger.Info("REQUEST",
			"method", request.HTTPMethod,
			"path", request.Path,
			"queryParameters", request.QueryStringParameters,
			"headers", maskSensitiveHeaders(request.Headers))
		if request.Body != "" {
			logger.Debug("REQUEST", "body", request.Body)
		}

		response, err := next(ctx, logger, request)

		if err != nil {
			logger.Error("ERROR", "error", err)
		}
		level := slog.LevelInfo
		if response.StatusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(ctx, level, "RESPONSE",
			"status", response.StatusCode,
			"duration", time.Since(startTime),
		)
		return response, err
	}
}

// maskSensitiveHeaders masks sensitive headers
func maskSensitiveHeaders(headers map[string]string) map[string]string {
	masked := make(map[string]string, len(headers))
	for k, v := range headers {
		switch http.CanonicalHeaderKey(k) {
		case "Authorization", "X-Api-Key", "Cookie":
			masked[k] = "***"
		default:
			masked[k] = v
		}
	}
	return masked
}
