package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/mcp"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/report"
)

// BalanceSheets generates balance sheets
type BalanceSheets interface {
	Generate(ctx context.Context, companyID string, asOfDate string) (*report.BalanceSheet, error)
}

type BalanceSheetTool struct {
	reports BalanceSheets
	now     func() time.Time
}

func NewBalanceSheetTool(reports BalanceSheets) *BalanceSheetTool {
	return &BalanceSheetTool{reports: reports, now: time.Now}
}

func (t *BalanceSheetTool) GetName() string {
	return "get_balance_sheet"
}

func (t *BalanceSheetTool) GetDescription() string {
	return "Returns the balance sheet of a company from posted entries dated on or before asOfDate."
}

func (t *BalanceSheetTool) GetInputSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"companyId": map[string]string{
				"type": "string",
			},
			"asOfDate": map[string]string{
				"type":        "string",
				"description": "YYYY-MM-DD, defaults to today",
				"pattern":     "^[0-9]{4}-[0-9]{2}-[0-9]{2}$",
			},
		},
		Required: []string{"companyId"},
	}
}

func (t *BalanceSheetTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var args struct {
		CompanyID string `json:"companyId"`
		AsOfDate  string `json:"asOfDate"`
	}
	if err := json.Unmarshal(arguments, &args); err != nil {
		return mcp.ErrorResult(fmt.Sprintf("Error parsing arguments: %v", err)), nil
	}
	companyID, err := companyFor(ctx, args.CompanyID)
	if err != nil {
		return nil, err
	}
	if args.AsOfDate == "" {
		args.AsOfDate = t.now().UTC().Format("2006-01-02")
	}

	sheet, err := t.reports.Generate(ctx, companyID, args.AsOfDate)
	if err != nil {
		return mcp.ErrorResult(fmt.Sprintf("Error generating balance sheet: %s", message(err))), nil
	}

	heading := fmt.Sprintf("Balance sheet of %s as of %s (assets %s, liabilities and equity %s):",
		sheet.CompanyID, sheet.AsOfDate,
		sheet.Totals.Assets.StringFixed(2), sheet.Totals.LiabilitiesAndEquity.StringFixed(2))
	return mcp.JSONResult(heading, sheet)
}
