package dto

import (
	"time"

	"github.com/Aimecol/erp-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryLineRequest is one line of a submitted journal entry.
// Exactly one of debitAmount/creditAmount must be nonzero; the service
// rejects lines that set both or neither.
type CreateEntryLineRequest struct {
	AccountCode  string          `json:"accountCode" binding:"required"`
	AccountName  string          `json:"accountName"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
}

// CreateEntryRequest is the payload for creating a journal entry.
// Status chooses the initial state: draft entries wait for an explicit post,
// posted entries fold into balances immediately.
type CreateEntryRequest struct {
	EntryDate   time.Time                `json:"entryDate" binding:"required"`
	Description string                   `json:"description" binding:"required"`
	Reference   string                   `json:"reference"`
	EntryType   domain.EntryType         `json:"entryType" binding:"required,oneof=manual automatic adjustment closing"`
	Source      domain.EntrySource       `json:"source" binding:"required,oneof=general chart-of-accounts sales purchase payroll bank inventory transfer"`
	TotalDebit  decimal.Decimal          `json:"totalDebit"`
	TotalCredit decimal.Decimal          `json:"totalCredit"`
	Status      domain.EntryStatus       `json:"status" binding:"omitempty,oneof=draft posted"`
	Lines       []CreateEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// EntryLineResponse mirrors a journal entry line on the wire.
type EntryLineResponse struct {
	LineID       string          `json:"id"`
	AccountCode  string          `json:"accountCode"`
	AccountName  string          `json:"accountName"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID     string              `json:"id"`
	EntryNumber string              `json:"entryNumber"`
	EntryDate   time.Time           `json:"entryDate"`
	Description string              `json:"description"`
	Reference   string              `json:"reference"`
	EntryType   domain.EntryType    `json:"entryType"`
	Source      domain.EntrySource  `json:"source"`
	TotalDebit  decimal.Decimal     `json:"totalDebit"`
	TotalCredit decimal.Decimal     `json:"totalCredit"`
	Status      domain.EntryStatus  `json:"status"`
	CreatedBy   string              `json:"createdBy"`
	CreatedAt   time.Time           `json:"createdAt"`
	Lines       []EntryLineResponse `json:"lines"`
}

// EntryMutationResponse reports the outcome of a post or reverse request.
// Changed is false when the transition was a no-op (wrong starting state).
type EntryMutationResponse struct {
	Entry   EntryResponse `json:"entry"`
	Changed bool          `json:"changed"`
}

// ListEntriesParams holds query parameters for listing entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse is a page of entries, newest first.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a domain.JournalEntry to its wire representation.
func ToEntryResponse(entry *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:     entry.EntryID,
		EntryNumber: entry.EntryNumber,
		EntryDate:   entry.EntryDate,
		Description: entry.Description,
		Reference:   entry.Reference,
		EntryType:   entry.EntryType,
		Source:      entry.Source,
		TotalDebit:  entry.TotalDebit,
		TotalCredit: entry.TotalCredit,
		Status:      entry.Status,
		CreatedBy:   entry.CreatedBy,
		CreatedAt:   entry.CreatedAt,
		Lines:       make([]EntryLineResponse, len(entry.Lines)),
	}
	for i, line := range entry.Lines {
		resp.Lines[i] = EntryLineResponse{
			LineID:       line.LineID,
			AccountCode:  line.AccountCode,
			AccountName:  line.AccountName,
			DebitAmount:  line.DebitAmount,
			CreditAmount: line.CreditAmount,
		}
	}
	return resp
}

// ToEntryResponses converts a slice of domain entries.
func ToEntryResponses(entries []domain.JournalEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}
