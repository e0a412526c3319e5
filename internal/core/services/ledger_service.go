package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Aimecol/erp-sub001/internal/apperrors"
	"github.com/Aimecol/erp-sub001/internal/core/domain"
	"github.com/Aimecol/erp-sub001/internal/core/ledger"
	portsrepo "github.com/Aimecol/erp-sub001/internal/core/ports/repositories"
	portssvc "github.com/Aimecol/erp-sub001/internal/core/ports/services"
	"github.com/Aimecol/erp-sub001/internal/dto"
	"github.com/Aimecol/erp-sub001/internal/middleware"
	"github.com/Aimecol/erp-sub001/internal/utils/accounting"
	"github.com/Aimecol/erp-sub001/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const defaultListLimit = 20

// ledgerService orchestrates the in-memory ledger engine and the durable
// entry log. The engine is authoritative; the log exists so balances and the
// entry-number sequence survive a restart.
type ledgerService struct {
	engine    *ledger.Engine
	entryRepo portsrepo.EntryRepositoryFacade // nil disables durability
}

// NewLedgerService creates a new LedgerService. entryRepo may be nil for a
// purely in-memory ledger (tests, demos).
func NewLedgerService(engine *ledger.Engine, entryRepo portsrepo.EntryRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		engine:    engine,
		entryRepo: entryRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// CreateEntry validates and records a new journal entry. The engine itself
// accepts anything; double-entry validation is applied here, at the API
// boundary, so API-submitted entries are always balanced.
func (s *ledgerService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	domainLines := make([]domain.JournalEntryLine, len(req.Lines))
	for i, line := range req.Lines {
		domainLines[i] = domain.JournalEntryLine{
			AccountCode:  line.AccountCode,
			AccountName:  line.AccountName,
			DebitAmount:  line.DebitAmount,
			CreditAmount: line.CreditAmount,
		}
	}

	if err := accounting.ValidateEntryLines(domainLines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if err := accounting.ValidateEntryBalance(domainLines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	totalDebit, totalCredit := accounting.SumLines(domainLines)
	// Declared totals are optional; when present they must match the lines.
	if !req.TotalDebit.IsZero() && !req.TotalDebit.Equal(totalDebit) {
		return nil, fmt.Errorf("%w: declared totalDebit %s does not match line sum %s",
			apperrors.ErrValidation, req.TotalDebit.String(), totalDebit.String())
	}
	if !req.TotalCredit.IsZero() && !req.TotalCredit.Equal(totalCredit) {
		return nil, fmt.Errorf("%w: declared totalCredit %s does not match line sum %s",
			apperrors.ErrValidation, req.TotalCredit.String(), totalCredit.String())
	}

	input := ledger.EntryInput{
		EntryDate:   req.EntryDate,
		Description: req.Description,
		Reference:   req.Reference,
		EntryType:   req.EntryType,
		Source:      req.Source,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Status:      req.Status,
		CreatedBy:   creatorUserID,
		Lines:       make([]ledger.LineInput, len(req.Lines)),
	}
	for i, line := range req.Lines {
		input.Lines[i] = ledger.LineInput{
			AccountCode:  line.AccountCode,
			AccountName:  line.AccountName,
			DebitAmount:  line.DebitAmount,
			CreditAmount: line.CreditAmount,
		}
	}

	entry := s.engine.AddEntry(input)

	if s.entryRepo != nil {
		if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
			logger.Error("Failed to append entry to durable log", slog.String("entry_id", entry.EntryID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to persist entry: %w", err)
		}
	}

	logger.Info("Journal entry created", slog.String("entry_id", entry.EntryID), slog.String("entry_number", entry.EntryNumber), slog.String("status", string(entry.Status)))
	return &entry, nil
}

// GetEntryByID retrieves a specific journal entry with its lines.
func (s *ledgerService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry := s.engine.Entry(entryID)
	if entry == nil {
		return nil, fmt.Errorf("entry %s: %w", entryID, apperrors.ErrNotFound)
	}
	return entry, nil
}

// ListEntries returns a page of entries, newest first, using an opaque
// cursor token of (createdAt, entryID).
func (s *ledgerService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	entries := s.engine.Entries()

	start := 0
	if params.NextToken != nil && *params.NextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*params.NextToken)
		if err != nil || len(fields) != 2 {
			return nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		cursorID := fields[1]
		found := false
		for i := range entries {
			if entries[i].EntryID == cursorID {
				start = i + 1
				found = true
				break
			}
		}
		if !found {
			// Cursor entry vanished (restart with partial log); fall back
			// to timestamp ordering so pagination still terminates.
			cursorAt, parseErr := time.Parse(time.RFC3339Nano, fields[0])
			if parseErr != nil {
				return nil, apperrors.NewAppError(400, "invalid nextToken", parseErr)
			}
			for i := range entries {
				if entries[i].CreatedAt.Before(cursorAt) {
					start = i
					found = true
					break
				}
			}
			if !found {
				start = len(entries)
			}
		}
	}

	end := start + limit
	if end > len(entries) {
		end = len(entries)
	}
	page := entries[start:end]

	var nextToken *string
	if end < len(entries) && len(page) > 0 {
		last := page[len(page)-1]
		token := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.EntryID)
		nextToken = &token
	}

	logger.Debug("Entries listed", slog.Int("count", len(page)))
	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(page),
		NextToken: nextToken,
	}, nil
}

// PostEntry commits a draft entry's effect into account balances. Posting an
// unknown entry returns ErrNotFound; posting a non-draft entry is a no-op.
func (s *ledgerService) PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.engine.Entry(entryID) == nil {
		return nil, false, fmt.Errorf("entry %s: %w", entryID, apperrors.ErrNotFound)
	}

	changed := s.engine.Post(entryID)
	entry := s.engine.Entry(entryID)

	if changed && s.entryRepo != nil {
		if err := s.entryRepo.UpdateEntryStatus(ctx, entryID, domain.Posted, time.Now().UTC()); err != nil {
			logger.Error("Failed to record post in durable log", slog.String("entry_id", entryID), slog.String("error", err.Error()))
			return nil, false, fmt.Errorf("failed to persist post: %w", err)
		}
	}

	if changed {
		logger.Info("Journal entry posted", slog.String("entry_id", entryID), slog.String("user_id", userID))
	} else {
		logger.Debug("Post skipped, entry not in draft", slog.String("entry_id", entryID), slog.String("status", string(entry.Status)))
	}
	return entry, changed, nil
}

// ReverseEntry nets a posted entry's balance effect back out and marks the
// entry reversed in place. No mirrored reversal entry is created.
func (s *ledgerService) ReverseEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.engine.Entry(entryID) == nil {
		return nil, false, fmt.Errorf("entry %s: %w", entryID, apperrors.ErrNotFound)
	}

	changed := s.engine.Reverse(entryID)
	entry := s.engine.Entry(entryID)

	if changed && s.entryRepo != nil {
		if err := s.entryRepo.UpdateEntryStatus(ctx, entryID, domain.Reversed, time.Now().UTC()); err != nil {
			logger.Error("Failed to record reversal in durable log", slog.String("entry_id", entryID), slog.String("error", err.Error()))
			return nil, false, fmt.Errorf("failed to persist reversal: %w", err)
		}
	}

	if changed {
		logger.Info("Journal entry reversed", slog.String("entry_id", entryID), slog.String("user_id", userID))
	} else {
		logger.Debug("Reverse skipped, entry not posted", slog.String("entry_id", entryID), slog.String("status", string(entry.Status)))
	}
	return entry, changed, nil
}

// Transfer moves money between two accounts via an engine-synthesized posted
// entry. Precondition failures surface as typed errors.
func (s *ledgerService) Transfer(ctx context.Context, req dto.TransferRequest, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.engine.Transfer(ledger.TransferRequest{
		FromAccountCode: req.FromAccountCode,
		FromAccountName: req.FromAccountName,
		ToAccountCode:   req.ToAccountCode,
		ToAccountName:   req.ToAccountName,
		Amount:          req.Amount,
		Description:     req.Description,
		Reference:       req.Reference,
		CreatedBy:       userID,
	})
	if err != nil {
		logger.Warn("Transfer rejected", slog.String("from", req.FromAccountCode), slog.String("to", req.ToAccountCode), slog.String("error", err.Error()))
		return nil, err
	}

	if s.entryRepo != nil {
		if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
			logger.Error("Failed to append transfer entry to durable log", slog.String("entry_id", entry.EntryID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to persist transfer: %w", err)
		}
	}

	logger.Info("Transfer completed", slog.String("entry_id", entry.EntryID), slog.String("from", req.FromAccountCode), slog.String("to", req.ToAccountCode))
	return &entry, nil
}

// GetBalance returns the running balance record for an account.
func (s *ledgerService) GetBalance(ctx context.Context, accountCode string) (*domain.AccountBalance, error) {
	bal := s.engine.Balance(accountCode)
	if bal == nil {
		return nil, fmt.Errorf("account %s: %w", accountCode, apperrors.ErrNotFound)
	}
	return bal, nil
}

// GetBalanceChange returns the delta since the last balance snapshot, or
// (nil, nil) when the account is unknown or nothing moved.
func (s *ledgerService) GetBalanceChange(ctx context.Context, accountCode string) (*domain.BalanceChange, error) {
	return s.engine.BalanceChange(accountCode), nil
}

// NetEffect exposes the engine's sign-convention calculation.
func (s *ledgerService) NetEffect(accountType domain.AccountType, debitAmount, creditAmount decimal.Decimal) domain.NetEffect {
	return s.engine.NetEffect(accountType, debitAmount, creditAmount)
}

// GetAvailableBalance exposes the engine's type-aware available amount.
func (s *ledgerService) GetAvailableBalance(ctx context.Context, accountCode string, accountType domain.AccountType) decimal.Decimal {
	return s.engine.AvailableBalance(accountCode, accountType)
}

// CanTransferFrom exposes the engine's raw transferability check.
func (s *ledgerService) CanTransferFrom(ctx context.Context, accountCode string, amount decimal.Decimal) bool {
	return s.engine.CanTransferFrom(accountCode, amount)
}

// RestoreFromLog replays the durable entry log into the engine, rebuilding
// balances and resuming the entry-number sequence.
func (s *ledgerService) RestoreFromLog(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.entryRepo == nil {
		return nil
	}

	entries, err := s.entryRepo.ListEntries(ctx)
	if err != nil {
		return fmt.Errorf("failed to load entry log: %w", err)
	}
	s.engine.Restore(entries)

	logger.Info("Ledger restored from entry log", slog.Int("entries", len(entries)), slog.Int64("sequence", s.engine.Sequence()))
	return nil
}
