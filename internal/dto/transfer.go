package dto

import (
	"github.com/shopspring/decimal"
)

// TransferRequest is the payload for moving money between two accounts.
// Amount must be positive, the accounts must differ, and the source account's
// absolute balance must cover the amount; violations map to typed errors.
type TransferRequest struct {
	FromAccountCode string          `json:"fromAccountCode" binding:"required"`
	FromAccountName string          `json:"fromAccountName"`
	ToAccountCode   string          `json:"toAccountCode" binding:"required"`
	ToAccountName   string          `json:"toAccountName"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Description     string          `json:"description"`
	Reference       string          `json:"reference"`
}

// TransferResponse returns the journal entry synthesized for a transfer.
type TransferResponse struct {
	EntryID string        `json:"entryID"`
	Entry   EntryResponse `json:"entry"`
}
