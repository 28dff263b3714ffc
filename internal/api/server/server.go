// Package server serves the API Gateway handler over plain net/http for
// local runs.
package server

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/api/middleware"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/api/response"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
)

// ActorHeader carries the actor id locally, in place of the authorizer context
const ActorHeader = "X-Actor-Id"

const maxBodyBytes = 1 << 20

// Handler adapts an APIGatewayHandler to http.Handler
type Handler struct {
	next   middleware.APIGatewayHandler
	logger *slog.Logger
}

// NewHandler creates a new Handler
func NewHandler(next middleware.APIGatewayHandler, logger *slog.Logger) *Handler {
	return &Handler{next: next, logger: logger}
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	request, err := ToProxyRequest(r)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	resp, err := h.next(r.Context(), h.logger, request)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.Write(w, resp)
}

// ToProxyRequest converts r into the event API Gateway would deliver.
func ToProxyRequest(r *http.Request) (events.APIGatewayProxyRequest, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return events.APIGatewayProxyRequest{}, errors.NewInvalidInputError("failed to read request body", err)
	}
	if len(body) > maxBodyBytes {
		return events.APIGatewayProxyRequest{}, errors.NewInvalidInputError("request body too large", nil)
	}

	headers := make(map[string]string, len(r.Header))
	for k, v := range r.Header {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}
	query := make(map[string]string, len(r.URL.Query()))
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			query[k] = v[0]
		}
	}

	authorizer := map[string]interface{}{}
	if actor := r.Header.Get(ActorHeader); actor != "" {
		authorizer["sub"] = actor
	}

	return events.APIGatewayProxyRequest{
		Path:                  r.URL.Path,
		HTTPMethod:            r.Method,
		Headers:               headers,
		QueryStringParameters: query,
		Body:                  string(body),
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID:  uuid.New().String(),
			HTTPMethod: r.Method,
			Path:       r.URL.Path,
			Authorizer: authorizer,
			Identity: events.APIGatewayRequestIdentity{
				SourceIP: r.RemoteAddr,
			},
		},
	}, nil
}
