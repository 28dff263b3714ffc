package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/api/middleware"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/journal"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/mcp"
)

// JournalCreator creates draft journal entries
type JournalCreator interface {
	CreateJournalEntry(ctx context.Context, companyID string, actorID string, req *journal.CreateJournalEntryRequest) (*journal.JournalEntry, error)
}

type CreateJournalEntryTool struct {
	journal JournalCreator
}

func NewCreateJournalEntryTool(journal JournalCreator) *CreateJournalEntryTool {
	return &CreateJournalEntryTool{journal: journal}
}

func (t *CreateJournalEntryTool) GetName() string {
	return "create_journal_entry"
}

func (t *CreateJournalEntryTool) GetDescription() string {
	return "Creates a draft journal entry. Lines must balance: total debit equals total credit, and each line sets exactly one of debit or credit."
}

func (t *CreateJournalEntryTool) GetInputSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"companyId": map[string]string{
				"type":        "string",
				"description": "The company the entry belongs to",
			},
			"date": map[string]string{
				"type":        "string",
				"description": "Entry date in YYYY-MM-DD format, inside an open fiscal year",
				"pattern":     "^[0-9]{4}-[0-9]{2}-[0-9]{2}$",
			},
			"reference": map[string]string{
				"type":        "string",
				"description": "Optional document reference",
			},
			"lines": map[string]interface{}{
				"type":     "array",
				"minItems": 2,
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"accountId": map[string]string{
							"type":        "string",
							"description": "Account id from the chart of accounts",
						},
						"debit": map[string]string{
							"type":        "string",
							"description": "Debit amount as a decimal string",
						},
						"credit": map[string]string{
							"type":        "string",
							"description": "Credit amount as a decimal string",
						},
						"description": map[string]string{
							"type": "string",
						},
						"taxId": map[string]string{
							"type": "string",
						},
					},
					"required": []string{"accountId"},
				},
			},
		},
		Required: []string{"companyId", "date", "lines"},
	}
}

func (t *CreateJournalEntryTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var args struct {
		CompanyID string `json:"companyId"`
		journal.CreateJournalEntryRequest
	}
	if err := json.Unmarshal(arguments, &args); err != nil {
		return mcp.ErrorResult(fmt.Sprintf("Error parsing arguments: %v", err)), nil
	}

	companyID, err := companyFor(ctx, args.CompanyID)
	if err != nil {
		return nil, err
	}
	rc, _ := middleware.FromContext(ctx)

	entry, err := t.journal.CreateJournalEntry(ctx, companyID, rc.ActorID, &args.CreateJournalEntryRequest)
	if err != nil {
		return mcp.ErrorResult(fmt.Sprintf("Error creating journal entry: %s", message(err))), nil
	}
	return mcp.JSONResult(fmt.Sprintf("Draft journal entry %s created:", entry.EntryNumber), entry)
}
