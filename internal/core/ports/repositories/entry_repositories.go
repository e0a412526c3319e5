package repositories

import (
	"context"
	"time"

	"github.com/Aimecol/erp-sub001/internal/core/domain"
)

// EntryRepositoryFacade is the durable append log for journal entries.
// Balances are never persisted; they are recomputed by replaying the log
// through the ledger engine at startup.
type EntryRepositoryFacade interface {
	// SaveEntry appends an entry and its lines atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error
	// UpdateEntryStatus records a post or reverse transition.
	// Returns apperrors.ErrNotFound when the entry is not in the log.
	UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedAt time.Time) error
	// ListEntries returns every logged entry with lines, oldest first.
	ListEntries(ctx context.Context) ([]domain.JournalEntry, error)
}
