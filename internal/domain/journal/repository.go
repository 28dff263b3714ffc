package journal

import (
	"context"
)

// Repository defines the interface for journal entry data operations
type Repository interface {
	// Create a new journal entry with its lines
	CreateJournalEntry(ctx context.Context, entry *JournalEntry) error

	// Get a journal entry by ID with its lines
	GetJournalEntry(ctx context.Context, journalEntryID string) (*JournalEntry, error)

	// Get journal entries by criteria, without lines
	ListJournalEntries(ctx context.Context, companyID string, filter JournalEntryFilter) ([]*JournalEntry, int, error)

	// Update the header fields of an entry (date, reference, fiscal year, state, posting fields)
	UpdateJournalEntry(ctx context.Context, entry *JournalEntry) error

	// Replace every line of an entry
	ReplaceLines(ctx context.Context, journalEntryID string, lines []Line) error

	// Delete the lines of an entry
	DeleteLines(ctx context.Context, journalEntryID string) error

	// Delete a journal entry header; lines must already be gone
	DeleteJournalEntry(ctx context.Context, journalEntryID string) error
}

// Sequencer hands out entry numbers. Values are unique and increasing per
// company; gaps are allowed.
type Sequencer interface {
	NextEntryNumber(ctx context.Context, companyID string) (int64, error)
}
