package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/mcp"
)

// MCPHandler serves MCP JSON-RPC requests on a single POST endpoint
type MCPHandler struct {
	service *mcp.Service
	verbose bool
}

// NewMCPHandler creates a new MCP handler. verbose logs request and response bodies.
func NewMCPHandler(service *mcp.Service, verbose bool) *MCPHandler {
	return &MCPHandler{service: service, verbose: verbose}
}

// Handle implements middleware.APIGatewayHandler
func (h *MCPHandler) Handle(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if request.HTTPMethod == http.MethodOptions {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusOK, Headers: mcpHeaders()}, nil
	}
	if request.HTTPMethod != http.MethodPost {
		resp := h.jsonRPCError(nil, mcp.MethodNotAllowed, "Method Not Allowed", nil, http.StatusMethodNotAllowed)
		resp.Headers["Allow"] = http.MethodPost
		return resp, nil
	}

	var rpcRequest mcp.JSONRPCRequest
	if err := json.Unmarshal([]byte(request.Body), &rpcRequest); err != nil {
		logger.Warn("Failed to parse JSON-RPC request", "error", err)
		return h.jsonRPCError(nil, mcp.ParseError, "Parse error", err.Error(), http.StatusOK), nil
	}
	if h.verbose {
		logger.Debug("MCP request", "body", request.Body)
	}

	httpResponse := h.service.HandleRequest(ctx, rpcRequest)
	if rpcRequest.IsNotification() {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusAccepted, Headers: mcpHeaders()}, nil
	}

	body, err := json.Marshal(httpResponse.JSONRPCResponse)
	if err != nil {
		logger.Error("Failed to marshal JSON-RPC response", "error", err)
		return h.jsonRPCError(rpcRequest.ID, mcp.InternalError, "Internal error", "Failed to marshal response", http.StatusOK), nil
	}
	if h.verbose {
		logger.Debug("MCP response", "body", string(body))
	}

	return events.APIGatewayProxyResponse{
		StatusCode: httpResponse.StatusCode,
		Headers:    mcpHeaders(),
		Body:       string(body),
	}, nil
}

func (h *MCPHandler) jsonRPCError(id json.RawMessage, code int, message string, data interface{}, status int) events.APIGatewayProxyResponse {
	resp := mcp.NewErrorHTTPResponse(id, code, message, data, status)
	body, _ := json.Marshal(resp.JSONRPCResponse)
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    mcpHeaders(),
		Body:       string(body),
	}
}

func mcpHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "POST, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type, Authorization, X-Company-Id",
	}
}
