package accounting

import (
	"fmt"

	"github.com/Aimecol/erp-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValidateEntryLines checks the shape of journal entry lines: amounts must be
// non-negative and exactly one side of each line must be nonzero.
// This is used at the API boundary; the ledger fold itself accepts anything.
func ValidateEntryLines(lines []domain.JournalEntryLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("entry must have at least two lines")
	}

	for i, line := range lines {
		if line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative() {
			return fmt.Errorf("line %d has a negative amount for account %s", i, line.AccountCode)
		}
		debitSet := line.DebitAmount.IsPositive()
		creditSet := line.CreditAmount.IsPositive()
		if debitSet == creditSet {
			return fmt.Errorf("line %d must set exactly one of debit/credit for account %s", i, line.AccountCode)
		}
	}
	return nil
}

// SumLines returns the debit and credit totals across lines.
func SumLines(lines []domain.JournalEntryLine) (decimal.Decimal, decimal.Decimal) {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.DebitAmount)
		totalCredit = totalCredit.Add(line.CreditAmount)
	}
	return totalDebit, totalCredit
}

// ValidateEntryBalance checks that an entry's debits equal its credits.
func ValidateEntryBalance(lines []domain.JournalEntryLine) error {
	totalDebit, totalCredit := SumLines(lines)
	if !totalDebit.Equal(totalCredit) {
		return fmt.Errorf("entry does not balance: debits sum to %s and credits sum to %s", totalDebit.String(), totalCredit.String())
	}
	return nil
}
