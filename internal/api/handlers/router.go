package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/api/middleware"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/api/response"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/account"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/bankstatement"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/fiscalyear"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/journal"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/ledger"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/paymentterm"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/reconciliation"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/report"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/tax"
)

// Services are the ledger operations exposed over HTTP
type Services struct {
	Accounts       *account.Service
	FiscalYears    *fiscalyear.Service
	Journal        *journal.Service
	Poster         *ledger.Poster
	BalanceSheet   *report.BalanceSheetGenerator
	Reconciler     reconciliation.Reconciler
	Taxes          *tax.Service
	PaymentTerms   *paymentterm.Service
	BankStatements *bankstatement.Service
}

// Router dispatches API Gateway requests to the ledger handlers
type Router struct {
	svc Services
}

// NewRouter creates a new router
func NewRouter(svc Services) *Router {
	return &Router{svc: svc}
}

// Handle routes the request by path and method. Errors returned from here are
// turned into JSON error responses by the recovery middleware.
func (r *Router) Handle(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if request.HTTPMethod == http.MethodOptions {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusOK, Headers: response.DefaultHeaders()}, nil
	}

	segments := splitPath(request.Path)
	if len(segments) == 0 {
		return response.NotFound("Endpoint not found", request.RequestContext.RequestID), nil
	}

	var h handlerFunc
	switch segments[0] {
	case "chart-of-accounts":
		h = r.accountRoute(request.HTTPMethod, segments[1:])
	case "fiscal-years":
		h = r.fiscalYearRoute(request.HTTPMethod, segments[1:])
	case "journal-entries":
		h = r.journalRoute(request.HTTPMethod, segments[1:])
	case "financial-statements":
		if len(segments) == 2 && segments[1] == "balance-sheet" && request.HTTPMethod == http.MethodGet {
			h = r.getBalanceSheet
		}
	case "bank-reconciliation":
		if len(segments) == 1 && request.HTTPMethod == http.MethodPost {
			h = r.reconcile
		}
	case "taxes":
		h = r.taxRoute(request.HTTPMethod, segments[1:])
	case "payment-terms":
		h = r.paymentTermRoute(request.HTTPMethod, segments[1:])
	case "bank-statements":
		h = r.bankStatementRoute(request.HTTPMethod, segments[1:])
	}
	if h == nil {
		return response.NotFound("Endpoint not found", request.RequestContext.RequestID), nil
	}

	rc, _ := middleware.FromContext(ctx)
	return h(ctx, logger, call{request: request, rc: rc, segments: segments})
}

type handlerFunc func(ctx context.Context, logger *slog.Logger, c call) (events.APIGatewayProxyResponse, error)

// call is a routed request with its caller identity
type call struct {
	request  events.APIGatewayProxyRequest
	rc       middleware.RequestContext
	segments []string
}

func (c call) requestID() string {
	return c.request.RequestContext.RequestID
}

// id returns the resource id segment of /collection/{id}[/action]
func (c call) id() string {
	if len(c.segments) < 2 {
		return ""
	}
	return c.segments[1]
}

// companyID returns the company of the caller or a validation error.
func (c call) companyID() (string, error) {
	if c.rc.CompanyID == "" {
		return "", errors.NewValidationError("company id is required (X-Company-Id header or company_id query parameter)")
	}
	return c.rc.CompanyID, nil
}

// decode unmarshals the JSON body into v.
func (c call) decode(v interface{}) error {
	if strings.TrimSpace(c.request.Body) == "" {
		return errors.NewInvalidInputError("request body is required", nil)
	}
	if err := json.Unmarshal([]byte(c.request.Body), v); err != nil {
		return errors.NewInvalidInputError("Invalid JSON body", err)
	}
	return nil
}

func (c call) query(name string) string {
	return strings.TrimSpace(c.request.QueryStringParameters[name])
}

func (c call) queryInt(name string) (int, error) {
	v := c.query(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.NewValidationError(fmt.Sprintf("%s must be an integer", name))
	}
	return n, nil
}

func (c call) queryBool(name string) (bool, error) {
	v := c.query(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.NewValidationError(fmt.Sprintf("%s must be a boolean", name))
	}
	return b, nil
}

// owned hides resources of other companies behind a not-found error.
func (c call) owned(resourceCompanyID, kind string) error {
	if c.rc.CompanyID != "" && resourceCompanyID != c.rc.CompanyID {
		return errors.NewNotFoundError(fmt.Sprintf("%s %s not found", kind, c.id()))
	}
	return nil
}

// ownedCompany rejects requests naming another company than the caller's.
func (c call) ownedCompany(companyID string) error {
	if companyID == "" {
		return errors.NewValidationError("company id is required")
	}
	if c.rc.CompanyID != "" && companyID != c.rc.CompanyID {
		return errors.NewNotFoundError(fmt.Sprintf("company %s not found", companyID))
	}
	return nil
}

// collection maps /x and /x/{id} onto the CRUD handlers of a resource.
type collection struct {
	create, list, get, update, remove handlerFunc
	actions                           map[string]handlerFunc
}

func (col collection) route(method string, rest []string) handlerFunc {
	switch len(rest) {
	case 0:
		switch method {
		case http.MethodPost:
			return col.create
		case http.MethodGet:
			return col.list
		}
	case 1:
		switch method {
		case http.MethodGet:
			return col.get
		case http.MethodPut, http.MethodPatch:
			return col.update
		case http.MethodDelete:
			return col.remove
		}
	case 2:
		if method == http.MethodPost {
			return col.actions[rest[1]]
		}
	}
	return nil
}

func splitPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
