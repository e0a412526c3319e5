package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft    EntryStatus = "draft"
	Posted   EntryStatus = "posted"
	Reversed EntryStatus = "reversed"
)

// EntryType classifies how a journal entry came to exist.
type EntryType string

const (
	EntryManual     EntryType = "manual"
	EntryAutomatic  EntryType = "automatic"
	EntryAdjustment EntryType = "adjustment"
	EntryClosing    EntryType = "closing"
)

// EntrySource identifies the subledger a journal entry originated from.
type EntrySource string

const (
	SourceGeneral         EntrySource = "general"
	SourceChartOfAccounts EntrySource = "chart-of-accounts"
	SourceSales           EntrySource = "sales"
	SourcePurchase        EntrySource = "purchase"
	SourcePayroll         EntrySource = "payroll"
	SourceBank            EntrySource = "bank"
	SourceInventory       EntrySource = "inventory"
	SourceTransfer        EntrySource = "transfer"
)

// JournalEntryLine is a single debit or credit line within a journal entry.
// Account codes are opaque references; the chart of accounts lives elsewhere.
type JournalEntryLine struct {
	LineID       string          `json:"id"`
	AccountCode  string          `json:"accountCode"`
	AccountName  string          `json:"accountName"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
}

// JournalEntry represents a dated accounting transaction composed of
// debit/credit lines. TotalDebit and TotalCredit are the declared totals
// as submitted by the caller; line order is preserved for display.
type JournalEntry struct {
	EntryID     string             `json:"id"`
	EntryNumber string             `json:"entryNumber"` // JE-YYYYMM-XXXX
	EntryDate   time.Time          `json:"entryDate"`
	Description string             `json:"description"`
	Reference   string             `json:"reference"`
	EntryType   EntryType          `json:"entryType"`
	Source      EntrySource        `json:"source"`
	TotalDebit  decimal.Decimal    `json:"totalDebit"`
	TotalCredit decimal.Decimal    `json:"totalCredit"`
	Status      EntryStatus        `json:"status"`
	CreatedBy   string             `json:"createdBy"`
	CreatedAt   time.Time          `json:"createdAt"`
	Lines       []JournalEntryLine `json:"lines"`
}
