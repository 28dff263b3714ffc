package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/api/response"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/reconciliation"
)

// getBalanceSheet serves the balance sheet as of as_of_date, today by default.
func (r *Router) getBalanceSheet(ctx context.Context, logger *slog.Logger, c call) (events.APIGatewayProxyResponse, error) {
	companyID, err := c.companyID()
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	asOf := c.query("as_of_date")
	if asOf == "" {
		asOf = time.Now().UTC().Format("2006-01-02")
	}
	sheet, err := r.svc.BalanceSheet.Generate(ctx, companyID, asOf)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(sheet, c.requestID()), nil
}

func (r *Router) reconcile(ctx context.Context, logger *slog.Logger, c call) (events.APIGatewayProxyResponse, error) {
	var req reconciliation.Request
	if err := c.decode(&req); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if req.CompanyID == "" {
		req.CompanyID = c.rc.CompanyID
	}
	if err := c.ownedCompany(req.CompanyID); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	summary, err := r.svc.Reconciler.Reconcile(ctx, req)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(summary, c.requestID()), nil
}
