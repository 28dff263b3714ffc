package handlers

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/api/response"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/bankstatement"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/paymentterm"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/tax"
)

// satellite adapts the field-validated CRUD services (taxes, payment terms,
// bank statements) to handlers. C and U are the create and update requests.
type satellite[T any, C any, U any] struct {
	kind    string
	company func(*T) string
	create  func(ctx context.Context, companyID string, req *C) (*T, error)
	list    func(ctx context.Context, companyID string) ([]*T, error)
	get     func(ctx context.Context, id string) (*T, error)
	update  func(ctx context.Context, id string, req *U) (*T, error)
	remove  func(ctx context.Context, id string) error
}

func (s satellite[T, C, U]) collection() collection {
	return collection{
		create: s.handleCreate,
		list:   s.handleList,
		get:    s.handleGet,
		update: s.handleUpdate,
		remove: s.handleDelete,
	}
}

func (s satellite[T, C, U]) handleCreate(ctx context.Context, logger *slog.Logger, c call) (events.APIGatewayProxyResponse, error) {
	companyID, err := c.companyID()
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	var req C
	if err := c.decode(&req); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	v, err := s.create(ctx, companyID, &req)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.Created(v, c.requestID()), nil
}

func (s satellite[T, C, U]) handleList(ctx context.Context, logger *slog.Logger, c call) (events.APIGatewayProxyResponse, error) {
	companyID, err := c.companyID()
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	items, err := s.list(ctx, companyID)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(items, c.requestID()), nil
}

func (s satellite[T, C, U]) handleGet(ctx context.Context, logger *slog.Logger, c call) (events.APIGatewayProxyResponse, error) {
	v, err := s.owned(ctx, c)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(v, c.requestID()), nil
}

func (s satellite[T, C, U]) handleUpdate(ctx context.Context, logger *slog.Logger, c call) (events.APIGatewayProxyResponse, error) {
	var req U
	if err := c.decode(&req); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if _, err := s.owned(ctx, c); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	v, err := s.update(ctx, c.id(), &req)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(v, c.requestID()), nil
}

func (s satellite[T, C, U]) handleDelete(ctx context.Context, logger *slog.Logger, c call) (events.APIGatewayProxyResponse, error) {
	if _, err := s.owned(ctx, c); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if err := s.remove(ctx, c.id()); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.NoContent(), nil
}

func (s satellite[T, C, U]) owned(ctx context.Context, c call) (*T, error) {
	v, err := s.get(ctx, c.id())
	if err != nil {
		return nil, err
	}
	if err := c.owned(s.company(v), s.kind); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *Router) taxRoute(method string, rest []string) handlerFunc {
	svc := r.svc.Taxes
	return satellite[tax.Tax, tax.CreateTaxRequest, tax.UpdateTaxRequest]{
		kind:    "tax",
		company: func(t *tax.Tax) string { return t.CompanyID },
		create:  svc.CreateTax,
		list:    svc.ListTaxes,
		get:     svc.GetTax,
		update:  svc.UpdateTax,
		remove:  svc.DeleteTax,
	}.collection().route(method, rest)
}

func (r *Router) paymentTermRoute(method string, rest []string) handlerFunc {
	svc := r.svc.PaymentTerms
	return satellite[paymentterm.PaymentTerm, paymentterm.CreatePaymentTermRequest, paymentterm.UpdatePaymentTermRequest]{
		kind:    "payment term",
		company: func(p *paymentterm.PaymentTerm) string { return p.CompanyID },
		create:  svc.CreatePaymentTerm,
		list:    svc.ListPaymentTerms,
		get:     svc.GetPaymentTerm,
		update:  svc.UpdatePaymentTerm,
		remove:  svc.DeletePaymentTerm,
	}.collection().route(method, rest)
}

func (r *Router) bankStatementRoute(method string, rest []string) handlerFunc {
	svc := r.svc.BankStatements
	return satellite[bankstatement.BankStatement, bankstatement.CreateBankStatementRequest, bankstatement.UpdateBankStatementRequest]{
		kind:    "bank statement",
		company: func(b *bankstatement.BankStatement) string { return b.CompanyID },
		create:  svc.CreateBankStatement,
		list:    svc.ListBankStatements,
		get:     svc.GetBankStatement,
		update:  svc.UpdateBankStatement,
		remove:  svc.DeleteBankStatement,
	}.collection().route(method, rest)
}
