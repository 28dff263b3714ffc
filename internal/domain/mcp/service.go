package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

const jsonRPCVersion = "2.0"

// HTTPResponse encapsulates both JSON-RPC response and HTTP status code
type HTTPResponse struct {
	JSONRPCResponse JSONRPCResponse
	StatusCode      int
}

// NewSuccessHTTPResponse creates a successful HTTP response with JSON-RPC result
func NewSuccessHTTPResponse(id json.RawMessage, result interface{}, statusCode int) HTTPResponse {
	return HTTPResponse{
		JSONRPCResponse: JSONRPCResponse{
			JSONRPC: jsonRPCVersion,
			ID:      id,
			Result:  result,
		},
		StatusCode: statusCode,
	}
}

// NewErrorHTTPResponse creates an error HTTP response with JSON-RPC error
func NewErrorHTTPResponse(id json.RawMessage, code int, message string, data interface{}, statusCode int) HTTPResponse {
	return HTTPResponse{
		JSONRPCResponse: JSONRPCResponse{
			JSONRPC: jsonRPCVersion,
			ID:      id,
			Error: &JSONRPCError{
				Code:    code,
				Message: message,
				Data:    data,
			},
		},
		StatusCode: statusCode,
	}
}

// Service handles MCP protocol operations
type Service struct {
	logger     *slog.Logger
	serverInfo ServerInfo
	registry   *HandlerRegistry
}

// NewService creates a new MCP service
func NewService(logger *slog.Logger, registry *HandlerRegistry) *Service {
	return &Service{
		logger: logger,
		serverInfo: ServerInfo{
			Name:    "ledger-mcp-server",
			Title:   "General ledger",
			Version: "1.0.0",
		},
		registry: registry,
	}
}

// HandleRequest processes a JSON-RPC request
func (s *Service) HandleRequest(ctx context.Context, request JSONRPCRequest) HTTPResponse {
	s.logger.Info("MCP request received", "method", request.Method)

	if request.JSONRPC != jsonRPCVersion {
		return NewErrorHTTPResponse(request.ID, InvalidRequest, "jsonrpc must be \"2.0\"", nil, http.StatusOK)
	}

	switch request.Method {
	case "initialize":
		return s.handleInitialize(request)
	case "notifications/initialized", "initialized":
		return NewSuccessHTTPResponse(request.ID, map[string]any{}, http.StatusAccepted)
	case "ping":
		return NewSuccessHTTPResponse(request.ID, map[string]any{}, http.StatusOK)
	case "resources/list":
		// Every ledger resource is templated by company.
		return NewSuccessHTTPResponse(request.ID, ListResourcesResult{Resources: []Resource{}}, http.StatusOK)
	case "resources/templates/list":
		return NewSuccessHTTPResponse(request.ID, ListResourceTemplatesResult{
			ResourceTemplates: s.registry.ListResourceTemplates(),
		}, http.StatusOK)
	case "resources/read":
		return s.handleReadResource(ctx, request)
	case "tools/list":
		return NewSuccessHTTPResponse(request.ID, ListToolsResult{Tools: s.registry.ListTools()}, http.StatusOK)
	case "tools/call":
		return s.handleCallTool(ctx, request)
	default:
		return NewErrorHTTPResponse(request.ID, MethodNotFound, fmt.Sprintf("Method not found: %s", request.Method), nil, http.StatusOK)
	}
}

func (s *Service) handleInitialize(request JSONRPCRequest) HTTPResponse {
	var params InitializeParams
	if err := json.Unmarshal(request.Params, &params); err != nil {
		return NewErrorHTTPResponse(request.ID, InvalidParams, "Invalid initialize params", err.Error(), http.StatusOK)
	}
	s.logger.Info("MCP client initializing", "client", params.ClientInfo.Name, "clientVersion", params.ClientInfo.Version)

	result := InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities: ServerCapability{
			Resources: ListChangedCapability{},
			Tools:     ListChangedCapability{},
		},
		Instructions: "Double-entry general ledger. Create balanced draft journal entries, post them, and read balance sheets. " +
			"Every tool takes the companyId it acts on.",
		ServerInfo: s.serverInfo,
	}
	return NewSuccessHTTPResponse(request.ID, result, http.StatusOK)
}

func (s *Service) handleReadResource(ctx context.Context, request JSONRPCRequest) HTTPResponse {
	var params ReadResourceParams
	if err := json.Unmarshal(request.Params, &params); err != nil {
		return NewErrorHTTPResponse(request.ID, InvalidParams, "Invalid read resource params", err.Error(), http.StatusOK)
	}

	handler, vars, ok := s.registry.FindResource(params.URI)
	if !ok {
		return NewErrorHTTPResponse(request.ID, InvalidParams, fmt.Sprintf("Resource not found: %s", params.URI), nil, http.StatusOK)
	}

	result, err := handler.Read(ctx, params.URI, vars)
	if err != nil {
		s.logger.Error("Failed to read resource", "uri", params.URI, "error", err)
		return NewErrorHTTPResponse(request.ID, InternalError, "Failed to read resource", err.Error(), http.StatusOK)
	}
	return NewSuccessHTTPResponse(request.ID, result, http.StatusOK)
}

func (s *Service) handleCallTool(ctx context.Context, request JSONRPCRequest) HTTPResponse {
	var params CallToolParams
	if err := json.Unmarshal(request.Params, &params); err != nil {
		return NewErrorHTTPResponse(request.ID, InvalidParams, "Invalid call tool params", err.Error(), http.StatusOK)
	}

	handler, ok := s.registry.GetTool(params.Name)
	if !ok {
		return NewErrorHTTPResponse(request.ID, InvalidParams, fmt.Sprintf("Tool not found: %s", params.Name), nil, http.StatusOK)
	}

	result, err := handler.Execute(ctx, params.Arguments)
	if err != nil {
		s.logger.Warn("Tool failed", "tool", params.Name, "error", err)
		// Tool failures are results, not protocol errors
		result = ErrorResult(err.Error())
	}
	return NewSuccessHTTPResponse(request.ID, result, http.StatusOK)
}
