package services

import (
	"context"

	"github.com/Aimecol/erp-sub001/internal/core/domain"
	"github.com/Aimecol/erp-sub001/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade is the application-facing surface of the ledger engine:
// entry lifecycle, transfers, and balance queries.
type LedgerSvcFacade interface {
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// PostEntry and ReverseEntry return the entry and whether a state
	// transition actually happened; invalid starting states are no-ops,
	// not errors.
	PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, bool, error)
	ReverseEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, bool, error)

	Transfer(ctx context.Context, req dto.TransferRequest, userID string) (*domain.JournalEntry, error)

	GetBalance(ctx context.Context, accountCode string) (*domain.AccountBalance, error)
	GetBalanceChange(ctx context.Context, accountCode string) (*domain.BalanceChange, error)
	NetEffect(accountType domain.AccountType, debitAmount, creditAmount decimal.Decimal) domain.NetEffect
	GetAvailableBalance(ctx context.Context, accountCode string, accountType domain.AccountType) decimal.Decimal
	CanTransferFrom(ctx context.Context, accountCode string, amount decimal.Decimal) bool

	// RestoreFromLog replays the durable entry log into the engine.
	// Called once at startup before the server accepts requests.
	RestoreFromLog(ctx context.Context) error
}
