package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/api/middleware"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/journal"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/mcp"
)

// JournalPoster posts draft entries
type JournalPoster interface {
	Post(ctx context.Context, journalEntryID string, actorID string) (*journal.JournalEntry, error)
}

// JournalReader loads entries
type JournalReader interface {
	GetJournalEntry(ctx context.Context, journalEntryID string) (*journal.JournalEntry, error)
}

type PostJournalEntryTool struct {
	entries JournalReader
	poster  JournalPoster
}

func NewPostJournalEntryTool(entries JournalReader, poster JournalPoster) *PostJournalEntryTool {
	return &PostJournalEntryTool{entries: entries, poster: poster}
}

func (t *PostJournalEntryTool) GetName() string {
	return "post_journal_entry"
}

func (t *PostJournalEntryTool) GetDescription() string {
	return "Posts a draft journal entry to the ledger. Posting is irreversible."
}

func (t *PostJournalEntryTool) GetInputSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"companyId": map[string]string{
				"type":        "string",
				"description": "The company the entry belongs to",
			},
			"journalEntryId": map[string]string{
				"type":        "string",
				"description": "Id of the draft entry",
			},
		},
		Required: []string{"companyId", "journalEntryId"},
	}
}

func (t *PostJournalEntryTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var args struct {
		CompanyID      string `json:"companyId"`
		JournalEntryID string `json:"journalEntryId"`
	}
	if err := json.Unmarshal(arguments, &args); err != nil {
		return mcp.ErrorResult(fmt.Sprintf("Error parsing arguments: %v", err)), nil
	}

	companyID, err := companyFor(ctx, args.CompanyID)
	if err != nil {
		return nil, err
	}
	rc, _ := middleware.FromContext(ctx)
	if rc.ActorID == "" {
		return mcp.ErrorResult("Posting requires an authenticated actor"), nil
	}

	entry, err := t.entries.GetJournalEntry(ctx, args.JournalEntryID)
	if err == nil && entry.CompanyID != companyID {
		err = errors.NewNotFoundError(fmt.Sprintf("journal entry %s not found", args.JournalEntryID))
	}
	if err == nil {
		entry, err = t.poster.Post(ctx, args.JournalEntryID, rc.ActorID)
	}
	if err != nil {
		return mcp.ErrorResult(fmt.Sprintf("Error posting journal entry: %s", message(err))), nil
	}
	return mcp.JSONResult(fmt.Sprintf("Journal entry %s posted:", entry.EntryNumber), entry)
}
