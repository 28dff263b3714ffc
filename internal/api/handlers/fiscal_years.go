package handlers

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/api/response"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/fiscalyear"
)

func (r *Router) fiscalYearRoute(method string, rest []string) handlerFunc {
	return collection{
		create: r.createFiscalYear,
		list:   r.listFiscalYears,
		get:    r.getFiscalYear,
		update: r.updateFiscalYear,
		remove: r.deleteFiscalYear,
		actions: map[string]handlerFunc{
			"close": r.closeFiscalYear,
		},
	}.route(method, rest)
}

func (r *Router) createFiscalYear(ctx context.Context, logger *slog.Logger, c call) (events.APIGatewayProxyResponse, error) {
	companyID, err := c.companyID()
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	var req fiscalyear.CreateFiscalYearRequest
	if err := c.decode(&req); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	fy, err := r.svc.FiscalYears.CreateFiscalYear(ctx, companyID, &req)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.Created(fy, c.requestID()), nil
}

func (r *Router) listFiscalYears(ctx context.Context, logger *slog.Logger, c call) (events.APIGatewayProxyResponse, error) {
	companyID, err := c.companyID()
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	years, err := r.svc.FiscalYears.ListFiscalYears(ctx, companyID)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(years, c.requestID()), nil
}

func (r *Router) getFiscalYear(ctx context.Context, logger *slog.Logger, c call) (events.APIGatewayProxyResponse, error) {
	fy, err := r.ownedFiscalYear(ctx, c)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(fy, c.requestID()), nil
}

func (r *Router) updateFiscalYear(ctx context.Context, logger *slog.Logger, c call) (events.APIGatewayProxyResponse, error) {
	var req fiscalyear.UpdateFiscalYearRequest
	if err := c.decode(&req); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if _, err := r.ownedFiscalYear(ctx, c); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	fy, err := r.svc.FiscalYears.UpdateFiscalYear(ctx, c.id(), &req)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(fy, c.requestID()), nil
}

func (r *Router) deleteFiscalYear(ctx context.Context, logger *slog.Logger, c call) (events.APIGatewayProxyResponse, error) {
	if _, err := r.ownedFiscalYear(ctx, c); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if err := r.svc.FiscalYears.DeleteFiscalYear(ctx, c.id()); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.NoContent(), nil
}

func (r *Router) closeFiscalYear(ctx context.Context, logger *slog.Logger, c call) (events.APIGatewayProxyResponse, error) {
	if _, err := r.ownedFiscalYear(ctx, c); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	fy, err := r.svc.FiscalYears.CloseFiscalYear(ctx, c.id(), c.rc.ActorID)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(fy, c.requestID()), nil
}

func (r *Router) ownedFiscalYear(ctx context.Context, c call) (*fiscalyear.FiscalYear, error) {
	fy, err := r.svc.FiscalYears.GetFiscalYear(ctx, c.id())
	if err != nil {
		return nil, err
	}
	if err := c.owned(fy.CompanyID, "fiscal year"); err != nil {
		return nil, err
	}
	return fy, nil
}
