package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/golang-jwt/jwt/v5"
)

// RequestContext identifies who calls and on behalf of which company
type RequestContext struct {
	CompanyID string
	ActorID   string
}

type requestContextKey struct{}

// FromContext returns the request context stored by RequestContextMiddleware.
func FromContext(ctx context.Context) (RequestContext, bool) {
	rc, ok := ctx.Value(requestContextKey{}).(RequestContext)
	return rc, ok
}

// WithRequestContext stores rc in ctx.
func WithRequestContext(ctx context.Context, rc RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// RequestContextMiddleware extracts the company and actor of a request.
//
// The company comes from the X-Company-Id header or the company_id query
// parameter. The actor is the subject set by the API Gateway authorizer.
// With trustForwardedJWT the subject of the bearer token is used instead;
// the gateway must already have verified that token.
type RequestContextMiddleware struct {
	trustForwardedJWT bool
}

// NewRequestContextMiddleware creates a new request context middleware
func NewRequestContextMiddleware(trustForwardedJWT bool) RequestContextMiddleware {
	return RequestContextMiddleware{trustForwardedJWT: trustForwardedJWT}
}

// Handle handles the request context middleware
func (m RequestContextMiddleware) Handle(next APIGatewayHandler) APIGatewayHandler {
	return func(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		rc := RequestContext{
			CompanyID: companyID(request),
			ActorID:   m.actorID(request, logger),
		}
		if rc.CompanyID != "" {
			logger = logger.With("companyId", rc.CompanyID)
		}
		return next(WithRequestContext(ctx, rc), logger, request)
	}
}

func companyID(request events.APIGatewayProxyRequest) string {
	if id := header(request.Headers, "X-Company-Id"); id != "" {
		return id
	}
	return strings.TrimSpace(request.QueryStringParameters["company_id"])
}

func (m RequestContextMiddleware) actorID(request events.APIGatewayProxyRequest, logger *slog.Logger) string {
	if m.trustForwardedJWT {
		if token, ok := bearerToken(header(request.Headers, "Authorization")); ok {
			claims := jwt.RegisteredClaims{}
			if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
				logger.Warn("ignoring malformed forwarded token", "error", err)
			} else if claims.Subject != "" {
				return claims.Subject
			}
		}
	}

	for _, key := range []string{"sub", "principalId"} {
		if v, ok := request.RequestContext.Authorizer[key].(string); ok && v != "" {
			return v
		}
	}
	if claims, ok := request.RequestContext.Authorizer["claims"].(map[string]interface{}); ok {
		if v, ok := claims["sub"].(string); ok {
			return v
		}
	}
	return ""
}

// header looks a header up case-insensitively
func header(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return strings.TrimSpace(v)
	}
	canonical := http.CanonicalHeaderKey(name)
	for k, v := range headers {
		if http.CanonicalHeaderKey(k) == canonical {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func bearerToken(authHeader string) (string, bool) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
