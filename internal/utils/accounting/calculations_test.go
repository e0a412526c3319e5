package accounting

import (
	"testing"

	"github.com/Aimecol/erp-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func line(code string, debit, credit int64) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		AccountCode:  code,
		DebitAmount:  decimal.NewFromInt(debit),
		CreditAmount: decimal.NewFromInt(credit),
	}
}

func TestValidateEntryLines(t *testing.T) {
	assert.NoError(t, ValidateEntryLines([]domain.JournalEntryLine{line("1000", 100, 0), line("3000", 0, 100)}))

	assert.Error(t, ValidateEntryLines([]domain.JournalEntryLine{line("1000", 100, 0)}), "single line")
	assert.Error(t, ValidateEntryLines([]domain.JournalEntryLine{line("1000", 100, 100), line("3000", 0, 100)}), "both sides set")
	assert.Error(t, ValidateEntryLines([]domain.JournalEntryLine{line("1000", 0, 0), line("3000", 0, 100)}), "neither side set")
	assert.Error(t, ValidateEntryLines([]domain.JournalEntryLine{line("1000", -5, 0), line("3000", 0, 100)}), "negative amount")
}

func TestSumLines(t *testing.T) {
	debit, credit := SumLines([]domain.JournalEntryLine{line("1000", 100, 0), line("2000", 20, 0), line("3000", 0, 120)})
	assert.True(t, debit.Equal(decimal.NewFromInt(120)))
	assert.True(t, credit.Equal(decimal.NewFromInt(120)))
}

func TestValidateEntryBalance(t *testing.T) {
	assert.NoError(t, ValidateEntryBalance([]domain.JournalEntryLine{line("1000", 100, 0), line("3000", 0, 100)}))
	assert.Error(t, ValidateEntryBalance([]domain.JournalEntryLine{line("1000", 100, 0), line("3000", 0, 80)}))
}
