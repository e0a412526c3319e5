package mapping

import (
	"github.com/Aimecol/erp-sub001/internal/core/domain"
	"github.com/Aimecol/erp-sub001/internal/models"
)

// ToModelEntry converts a domain JournalEntry to its database model.
// Lines are mapped separately via ToModelEntryLines.
func ToModelEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:     d.EntryID,
		EntryNumber: d.EntryNumber,
		EntryDate:   d.EntryDate,
		Description: d.Description,
		Reference:   d.Reference,
		EntryType:   string(d.EntryType),
		Source:      string(d.Source),
		TotalDebit:  d.TotalDebit,
		TotalCredit: d.TotalCredit,
		Status:      string(d.Status),
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.CreatedAt,
	}
}

// ToDomainEntry converts a model JournalEntry to a domain JournalEntry.
// The caller attaches lines afterwards.
func ToDomainEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		EntryNumber: m.EntryNumber,
		EntryDate:   m.EntryDate,
		Description: m.Description,
		Reference:   m.Reference,
		EntryType:   domain.EntryType(m.EntryType),
		Source:      domain.EntrySource(m.Source),
		TotalDebit:  m.TotalDebit,
		TotalCredit: m.TotalCredit,
		Status:      domain.EntryStatus(m.Status),
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}

// ToModelEntryLines converts domain lines to database models, preserving order.
func ToModelEntryLines(entryID string, lines []domain.JournalEntryLine) []models.JournalEntryLine {
	out := make([]models.JournalEntryLine, len(lines))
	for i, line := range lines {
		out[i] = models.JournalEntryLine{
			LineID:       line.LineID,
			EntryID:      entryID,
			AccountCode:  line.AccountCode,
			AccountName:  line.AccountName,
			DebitAmount:  line.DebitAmount,
			CreditAmount: line.CreditAmount,
			LineOrder:    i,
		}
	}
	return out
}

// ToDomainEntryLine converts a model line to a domain line.
func ToDomainEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:       m.LineID,
		AccountCode:  m.AccountCode,
		AccountName:  m.AccountName,
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
	}
}
