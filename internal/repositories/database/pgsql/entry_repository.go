package pgsql

import (
	"context"
	"time"

	"github.com/Aimecol/erp-sub001/internal/apperrors"
	"github.com/Aimecol/erp-sub001/internal/core/domain"
	portsrepo "github.com/Aimecol/erp-sub001/internal/core/ports/repositories"
	"github.com/Aimecol/erp-sub001/internal/models"
	"github.com/Aimecol/erp-sub001/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for the journal entry log.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepositoryFacade
var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

// SaveEntry appends an entry and its lines atomically within a DB transaction.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Will be ignored if transaction is committed successfully
	defer r.Rollback(ctx, tx)

	modelEntry := mapping.ToModelEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (
			entry_id, entry_number, entry_date, description, reference,
			entry_type, source, total_debit, total_credit, status,
			created_by, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, entryQuery,
		modelEntry.EntryID,
		modelEntry.EntryNumber,
		modelEntry.EntryDate,
		modelEntry.Description,
		modelEntry.Reference,
		modelEntry.EntryType,
		modelEntry.Source,
		modelEntry.TotalDebit,
		modelEntry.TotalCredit,
		modelEntry.Status,
		modelEntry.CreatedBy,
		modelEntry.CreatedAt,
		modelEntry.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+modelEntry.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_lines (line_id, entry_id, account_code, account_name, debit_amount, credit_amount, line_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, line := range mapping.ToModelEntryLines(entry.EntryID, entry.Lines) {
		batch.Queue(lineQuery,
			line.LineID,
			line.EntryID,
			line.AccountCode,
			line.AccountName,
			line.DebitAmount,
			line.CreditAmount,
			line.LineOrder,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range entry.Lines {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return apperrors.NewAppError(500, "failed to insert journal entry line for "+modelEntry.EntryID, err)
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close line batch for "+modelEntry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateEntryStatus records a post or reverse transition in the log.
func (r *PgxEntryRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2,
		    updated_at = $3
		WHERE entry_id = $1;
	`

	cmdTag, err := r.Pool.Exec(ctx, query, entryID, string(status), updatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for entry "+entryID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("entry " + entryID + " not found for update")
	}

	return nil
}

// ListEntries loads the full entry log with lines, oldest first, for replay.
func (r *PgxEntryRepository) ListEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	entryQuery := `
		SELECT entry_id, entry_number, entry_date, description, reference,
		       entry_type, source, total_debit, total_credit, status,
		       created_by, created_at, updated_at
		FROM journal_entries
		ORDER BY created_at ASC, entry_number ASC;
	`

	rows, err := r.Pool.Query(ctx, entryQuery)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0)
	entryIDs := make([]string, 0)
	for rows.Next() {
		var modelEntry models.JournalEntry
		if err := rows.Scan(
			&modelEntry.EntryID,
			&modelEntry.EntryNumber,
			&modelEntry.EntryDate,
			&modelEntry.Description,
			&modelEntry.Reference,
			&modelEntry.EntryType,
			&modelEntry.Source,
			&modelEntry.TotalDebit,
			&modelEntry.TotalCredit,
			&modelEntry.Status,
			&modelEntry.CreatedBy,
			&modelEntry.CreatedAt,
			&modelEntry.UpdatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, mapping.ToDomainEntry(modelEntry))
		entryIDs = append(entryIDs, modelEntry.EntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	linesByEntry, err := r.findLinesByEntryIDs(ctx, entryIDs)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = linesByEntry[entries[i].EntryID]
	}

	return entries, nil
}

// findLinesByEntryIDs fetches lines for multiple entries in one query,
// grouped by entry ID in submitted line order.
func (r *PgxEntryRepository) findLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalEntryLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.JournalEntryLine{}, nil
	}

	query := `
		SELECT line_id, entry_id, account_code, account_name, debit_amount, credit_amount, line_order
		FROM journal_entry_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_order;
	`

	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry IDs", err)
	}
	defer rows.Close()

	result := make(map[string][]domain.JournalEntryLine, len(entryIDs))
	for rows.Next() {
		var modelLine models.JournalEntryLine
		if err := rows.Scan(
			&modelLine.LineID,
			&modelLine.EntryID,
			&modelLine.AccountCode,
			&modelLine.AccountName,
			&modelLine.DebitAmount,
			&modelLine.CreditAmount,
			&modelLine.LineOrder,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry line row", err)
		}
		result[modelLine.EntryID] = append(result[modelLine.EntryID], mapping.ToDomainEntryLine(modelLine))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry line rows", err)
	}

	// Ensure even entries with no lines have an entry (empty slice)
	for _, id := range entryIDs {
		if _, exists := result[id]; !exists {
			result[id] = []domain.JournalEntryLine{}
		}
	}

	return result, nil
}
