package mcp

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
)

// ToolHandler defines the interface for tool handlers
type ToolHandler interface {
	GetName() string
	GetDescription() string
	GetInputSchema() JSONSchema
	Execute(ctx context.Context, arguments json.RawMessage) (*CallToolResult, error)
}

// ResourceHandler serves every URI matching its template. Read receives the
// values of the template variables.
type ResourceHandler interface {
	GetURITemplate() string
	GetName() string
	GetDescription() string
	GetMimeType() string
	Read(ctx context.Context, uri string, vars map[string]string) (*ReadResourceResult, error)
}

// HandlerRegistry manages tool and resource handlers
type HandlerRegistry struct {
	tools     map[string]ToolHandler
	resources []ResourceHandler
}

// NewHandlerRegistry creates a new handler registry
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		tools: make(map[string]ToolHandler),
	}
}

// RegisterTool registers a tool handler
func (r *HandlerRegistry) RegisterTool(handler ToolHandler) {
	r.tools[handler.GetName()] = handler
}

// RegisterResource registers a resource handler. Templates are tried in
// registration order.
func (r *HandlerRegistry) RegisterResource(handler ResourceHandler) {
	r.resources = append(r.resources, handler)
}

// GetTool retrieves a tool handler by name
func (r *HandlerRegistry) GetTool(name string) (ToolHandler, bool) {
	handler, ok := r.tools[name]
	return handler, ok
}

// FindResource returns the first handler whose template matches uri.
func (r *HandlerRegistry) FindResource(uri string) (ResourceHandler, map[string]string, bool) {
	for _, handler := range r.resources {
		if vars, ok := MatchTemplate(handler.GetURITemplate(), uri); ok {
			return handler, vars, true
		}
	}
	return nil, nil, false
}

// ListTools returns all registered tools sorted by name
func (r *HandlerRegistry) ListTools() []Tool {
	tools := make([]Tool, 0, len(r.tools))
	for _, handler := range r.tools {
		tools = append(tools, Tool{
			Name:        handler.GetName(),
			Description: handler.GetDescription(),
			InputSchema: handler.GetInputSchema(),
		})
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name < tools[j].Name })
	return tools
}

// ListResourceTemplates returns the registered templates
func (r *HandlerRegistry) ListResourceTemplates() []ResourceTemplate {
	templates := make([]ResourceTemplate, 0, len(r.resources))
	for _, handler := range r.resources {
		templates = append(templates, ResourceTemplate{
			URITemplate: handler.GetURITemplate(),
			Name:        handler.GetName(),
			Description: handler.GetDescription(),
			MimeType:    handler.GetMimeType(),
		})
	}
	return templates
}

// MatchTemplate matches uri against a template whose path segments may be
// {variables}. Scheme and every literal segment must be equal.
func MatchTemplate(template, uri string) (map[string]string, bool) {
	tScheme, tPath, ok := strings.Cut(template, "://")
	if !ok {
		return nil, false
	}
	uScheme, uPath, ok := strings.Cut(uri, "://")
	if !ok || tScheme != uScheme {
		return nil, false
	}

	tParts := strings.Split(strings.Trim(tPath, "/"), "/")
	uParts := strings.Split(strings.Trim(uPath, "/"), "/")
	if len(tParts) != len(uParts) {
		return nil, false
	}

	vars := make(map[string]string)
	for i, part := range tParts {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			if uParts[i] == "" {
				return nil, false
			}
			vars[strings.Trim(part, "{}")] = uParts[i]
			continue
		}
		if part != uParts[i] {
			return nil, false
		}
	}
	return vars, true
}
