package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
// Comparison is case-insensitive; use NormalizeAccountType before matching.
type AccountType string

const (
	Asset     AccountType = "asset"
	Liability AccountType = "liability"
	Equity    AccountType = "equity"
	Income    AccountType = "income"
	Revenue   AccountType = "revenue"
	Expense   AccountType = "expense"
)

// NormalizeAccountType lowercases an account type for comparison.
func NormalizeAccountType(t AccountType) AccountType {
	return AccountType(strings.ToLower(string(t)))
}

// IsDebitNormal reports whether the account type increases on the debit side.
func (t AccountType) IsDebitNormal() bool {
	switch NormalizeAccountType(t) {
	case Asset, Expense:
		return true
	}
	return false
}

// TransactionSide labels the side of a double-entry movement.
type TransactionSide string

const (
	DebitSide  TransactionSide = "debit"
	CreditSide TransactionSide = "credit"
)

// BalanceDirection labels the economic direction of a balance movement.
type BalanceDirection string

const (
	Increase BalanceDirection = "increase"
	Decrease BalanceDirection = "decrease"
)

// AccountBalance is the running balance record for one account code.
// Balance is always DebitBalance - CreditBalance regardless of account type;
// type-aware interpretation happens in NetEffect / available-balance queries.
type AccountBalance struct {
	AccountCode           string          `json:"accountCode"`
	Balance               decimal.Decimal `json:"balance"`
	DebitBalance          decimal.Decimal `json:"debitBalance"`
	CreditBalance         decimal.Decimal `json:"creditBalance"`
	PreviousBalance       decimal.Decimal `json:"previousBalance"`
	LastTransactionAmount decimal.Decimal `json:"lastTransactionAmount"`
	LastTransactionType   TransactionSide `json:"lastTransactionType"`
	LastTransactionDate   time.Time       `json:"lastTransactionDate"`
}

// BalanceChange is the delta between an account's balance and its previous
// snapshot. It exists for display; it is not a history.
type BalanceChange struct {
	Amount decimal.Decimal  `json:"amount"`
	Type   BalanceDirection `json:"type"`
}

// NetEffect is the account-type-aware economic effect of a debit/credit pair.
type NetEffect struct {
	NetEffect  decimal.Decimal  `json:"netEffect"`
	EffectType BalanceDirection `json:"effectType"`
}
