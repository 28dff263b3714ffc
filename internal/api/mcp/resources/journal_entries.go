package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/journal"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/mcp"
)

// JournalEntries reads journal entries
type JournalEntries interface {
	GetJournalEntry(ctx context.Context, journalEntryID string) (*journal.JournalEntry, error)
	ListJournalEntries(ctx context.Context, companyID string, filter journal.JournalEntryFilter) (*journal.GetJournalEntriesResponse, error)
}

// JournalEntriesResource lists the most recent entries of a company
type JournalEntriesResource struct {
	journal JournalEntries
}

func NewJournalEntriesResource(journal JournalEntries) *JournalEntriesResource {
	return &JournalEntriesResource{journal: journal}
}

func (r *JournalEntriesResource) GetURITemplate() string {
	return "ledger://companies/{companyId}/journal-entries"
}

func (r *JournalEntriesResource) GetName() string {
	return "Journal Entries"
}

func (r *JournalEntriesResource) GetDescription() string {
	return "Journal entries of a company, newest first, without lines"
}

func (r *JournalEntriesResource) GetMimeType() string {
	return "application/json"
}

func (r *JournalEntriesResource) Read(ctx context.Context, uri string, vars map[string]string) (*mcp.ReadResourceResult, error) {
	companyID, err := companyFor(ctx, vars["companyId"])
	if err != nil {
		return nil, err
	}
	list, err := r.journal.ListJournalEntries(ctx, companyID, journal.JournalEntryFilter{Limit: 100})
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return jsonContent(uri, list)
}

// JournalEntryResource reads one entry with its lines
type JournalEntryResource struct {
	journal JournalEntries
}

func NewJournalEntryResource(journal JournalEntries) *JournalEntryResource {
	return &JournalEntryResource{journal: journal}
}

func (r *JournalEntryResource) GetURITemplate() string {
	return "ledger://companies/{companyId}/journal-entries/{journalEntryId}"
}

func (r *JournalEntryResource) GetName() string {
	return "Journal Entry"
}

func (r *JournalEntryResource) GetDescription() string {
	return "A journal entry with its lines"
}

func (r *JournalEntryResource) GetMimeType() string {
	return "application/json"
}

func (r *JournalEntryResource) Read(ctx context.Context, uri string, vars map[string]string) (*mcp.ReadResourceResult, error) {
	companyID, err := companyFor(ctx, vars["companyId"])
	if err != nil {
		return nil, err
	}
	entry, err := r.journal.GetJournalEntry(ctx, vars["journalEntryId"])
	if err != nil {
		return nil, fmt.Errorf("failed to get journal entry %s: %w", vars["journalEntryId"], err)
	}
	if entry.CompanyID != companyID {
		return nil, errors.NewNotFoundError(fmt.Sprintf("journal entry %s not found", vars["journalEntryId"]))
	}
	return jsonContent(uri, entry)
}

func jsonContent(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []mcp.ResourceContent{
			{
				URI:      uri,
				MimeType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}
