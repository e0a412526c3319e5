package dto

import (
	"time"

	"github.com/Aimecol/erp-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceResponse mirrors an account's running balance record.
type BalanceResponse struct {
	AccountCode           string                 `json:"accountCode"`
	Balance               decimal.Decimal        `json:"balance"`
	DebitBalance          decimal.Decimal        `json:"debitBalance"`
	CreditBalance         decimal.Decimal        `json:"creditBalance"`
	PreviousBalance       decimal.Decimal        `json:"previousBalance"`
	LastTransactionAmount decimal.Decimal        `json:"lastTransactionAmount"`
	LastTransactionType   domain.TransactionSide `json:"lastTransactionType"`
	LastTransactionDate   time.Time              `json:"lastTransactionDate"`
}

// BalanceChangeResponse wraps the delta since the last balance snapshot.
// Change is null when the account is unknown or nothing moved.
type BalanceChangeResponse struct {
	AccountCode string                `json:"accountCode"`
	Change      *domain.BalanceChange `json:"change"`
}

// NetEffectResponse reports the account-type-aware effect of a debit/credit pair.
type NetEffectResponse struct {
	AccountCode string                  `json:"accountCode"`
	AccountType domain.AccountType      `json:"accountType"`
	NetEffect   decimal.Decimal         `json:"netEffect"`
	EffectType  domain.BalanceDirection `json:"effectType"`
}

// AvailableBalanceResponse reports the non-negative transferable amount.
type AvailableBalanceResponse struct {
	AccountCode      string             `json:"accountCode"`
	AccountType      domain.AccountType `json:"accountType"`
	AvailableBalance decimal.Decimal    `json:"availableBalance"`
}

// TransferableResponse reports whether an account can cover an amount.
type TransferableResponse struct {
	AccountCode string          `json:"accountCode"`
	Amount      decimal.Decimal `json:"amount"`
	CanTransfer bool            `json:"canTransfer"`
}

// ToBalanceResponse converts a domain.AccountBalance to its wire representation.
func ToBalanceResponse(bal *domain.AccountBalance) BalanceResponse {
	return BalanceResponse{
		AccountCode:           bal.AccountCode,
		Balance:               bal.Balance,
		DebitBalance:          bal.DebitBalance,
		CreditBalance:         bal.CreditBalance,
		PreviousBalance:       bal.PreviousBalance,
		LastTransactionAmount: bal.LastTransactionAmount,
		LastTransactionType:   bal.LastTransactionType,
		LastTransactionDate:   bal.LastTransactionDate,
	}
}
