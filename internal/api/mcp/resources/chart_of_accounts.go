package resources

import (
	"context"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/account"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/mcp"
)

// Chart reads a company's chart of accounts as a tree
type Chart interface {
	Hierarchy(ctx context.Context, companyID string) ([]*account.AccountNode, error)
}

// ChartOfAccountsResource exposes the account tree of a company
type ChartOfAccountsResource struct {
	chart Chart
}

func NewChartOfAccountsResource(chart Chart) *ChartOfAccountsResource {
	return &ChartOfAccountsResource{chart: chart}
}

func (r *ChartOfAccountsResource) GetURITemplate() string {
	return "ledger://companies/{companyId}/chart-of-accounts"
}

func (r *ChartOfAccountsResource) GetName() string {
	return "Chart of Accounts"
}

func (r *ChartOfAccountsResource) GetDescription() string {
	return "Account tree of a company; use the account ids when creating journal entries"
}

func (r *ChartOfAccountsResource) GetMimeType() string {
	return "application/json"
}

func (r *ChartOfAccountsResource) Read(ctx context.Context, uri string, vars map[string]string) (*mcp.ReadResourceResult, error) {
	companyID, err := companyFor(ctx, vars["companyId"])
	if err != nil {
		return nil, err
	}
	tree, err := r.chart.Hierarchy(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return jsonContent(uri, tree)
}
