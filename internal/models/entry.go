package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the database row for a ledger entry in the durable log.
type JournalEntry struct {
	EntryID     string          `json:"entryID"`     // Primary Key (UUID)
	EntryNumber string          `json:"entryNumber"` // Sequential, JE-YYYYMM-XXXX
	EntryDate   time.Time       `json:"entryDate"`   // Date the event occurred
	Description string          `json:"description"` // Nullable user description
	Reference   string          `json:"reference"`   // Nullable external reference
	EntryType   string          `json:"entryType"`
	Source      string          `json:"source"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Status      string          `json:"status"` // draft, posted or reversed
	CreatedBy   string          `json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"` // Bumped on status changes
}

// JournalEntryLine is the database row for a single debit or credit line.
// LineOrder preserves the submitted line order across replay.
type JournalEntryLine struct {
	LineID       string          `json:"lineID"` // Primary Key (UUID)
	EntryID      string          `json:"entryID"`
	AccountCode  string          `json:"accountCode"`
	AccountName  string          `json:"accountName"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	LineOrder    int             `json:"lineOrder"`
}
