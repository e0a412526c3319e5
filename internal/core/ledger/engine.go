package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Aimecol/erp-sub001/internal/apperrors"
	"github.com/Aimecol/erp-sub001/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultActor is recorded as CreatedBy on engine-synthesized entries
// (transfers) when the caller does not supply an actor.
const DefaultActor = "system"

// LineInput is one debit/credit line of an entry being created. In normal use
// exactly one of the two amounts is nonzero; the balance fold itself tolerates
// any combination (see Fold semantics on updateBalances).
type LineInput struct {
	AccountCode  string
	AccountName  string
	DebitAmount  decimal.Decimal
	CreditAmount decimal.Decimal
}

// EntryInput carries the caller-supplied fields of a new journal entry.
// EntryID, EntryNumber and CreatedAt are assigned by the engine.
type EntryInput struct {
	EntryDate   time.Time
	Description string
	Reference   string
	EntryType   domain.EntryType
	Source      domain.EntrySource
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Status      domain.EntryStatus
	CreatedBy   string
	Lines       []LineInput
}

// TransferRequest describes a money movement between two accounts. The engine
// synthesizes a balanced two-line posted entry from it.
type TransferRequest struct {
	FromAccountCode string
	FromAccountName string
	ToAccountCode   string
	ToAccountName   string
	Amount          decimal.Decimal
	Description     string
	Reference       string
	CreatedBy       string
}

// Engine owns the journal-entry collection and the derived account balances.
// All state is in-memory; a mutex serializes mutators so the entry-number
// sequence stays monotonic under concurrent callers. Durability, when wanted,
// is layered on top by replaying a persisted entry log through Restore.
type Engine struct {
	mu       sync.Mutex
	entries  []domain.JournalEntry // newest first
	balances map[string]*domain.AccountBalance
	seq      int64 // count of entries ever created

	now          func() time.Time
	newID        func() string
	defaultActor string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the engine's time source. Used by tests and replay.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator replaces the engine's entry/line ID source.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// WithDefaultActor overrides the CreatedBy recorded on engine-synthesized
// entries when no actor is supplied. Empty strings are ignored.
func WithDefaultActor(actor string) Option {
	return func(e *Engine) {
		if actor != "" {
			e.defaultActor = actor
		}
	}
}

// New creates an empty ledger engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		balances:     make(map[string]*domain.AccountBalance),
		now:          func() time.Time { return time.Now().UTC() },
		newID:        uuid.NewString,
		defaultActor: DefaultActor,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// nextEntryNumber formats JE-YYYYMM-XXXX. The sequence counts every entry ever
// created by this engine, not entries per period.
func (e *Engine) nextEntryNumber(at time.Time) string {
	e.seq++
	return fmt.Sprintf("JE-%s-%04d", at.Format("200601"), e.seq)
}

// AddEntry creates a journal entry from the input, assigns its identity and
// number, and prepends it to the collection. If the entry is created already
// posted, its lines are folded into account balances immediately. The entry is
// accepted as-is: the fold has no rejection path, so unbalanced input reaches
// the ledger unchanged (callers wanting strict double-entry validate first).
func (e *Engine) AddEntry(input EntryInput) domain.JournalEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.addEntryLocked(input)
}

func (e *Engine) addEntryLocked(input EntryInput) domain.JournalEntry {
	now := e.now()
	status := input.Status
	if status == "" {
		status = domain.Draft
	}

	entry := domain.JournalEntry{
		EntryID:     e.newID(),
		EntryNumber: e.nextEntryNumber(now),
		EntryDate:   input.EntryDate,
		Description: input.Description,
		Reference:   input.Reference,
		EntryType:   input.EntryType,
		Source:      input.Source,
		TotalDebit:  input.TotalDebit,
		TotalCredit: input.TotalCredit,
		Status:      status,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   now,
	}
	entry.Lines = make([]domain.JournalEntryLine, len(input.Lines))
	for i, line := range input.Lines {
		entry.Lines[i] = domain.JournalEntryLine{
			LineID:       e.newID(),
			AccountCode:  line.AccountCode,
			AccountName:  line.AccountName,
			DebitAmount:  line.DebitAmount,
			CreditAmount: line.CreditAmount,
		}
	}

	e.entries = append([]domain.JournalEntry{entry}, e.entries...)

	if entry.Status == domain.Posted {
		e.updateBalances(entry.Lines)
	}

	return entry
}

// updateBalances folds lines into the per-account running balances.
// Pure fold: each line snapshots the current balance as PreviousBalance, adds
// both amounts to the cumulative sides, recomputes Balance as debit minus
// credit, and records the larger of the two amounts as the last transaction.
// Malformed lines (both amounts set, both zero) are folded silently.
func (e *Engine) updateBalances(lines []domain.JournalEntryLine) {
	now := e.now()
	for _, line := range lines {
		bal, ok := e.balances[line.AccountCode]
		if !ok {
			bal = &domain.AccountBalance{AccountCode: line.AccountCode}
			e.balances[line.AccountCode] = bal
		}

		bal.PreviousBalance = bal.Balance
		bal.DebitBalance = bal.DebitBalance.Add(line.DebitAmount)
		bal.CreditBalance = bal.CreditBalance.Add(line.CreditAmount)
		bal.Balance = bal.DebitBalance.Sub(bal.CreditBalance)

		if line.DebitAmount.GreaterThan(line.CreditAmount) {
			bal.LastTransactionAmount = line.DebitAmount
			bal.LastTransactionType = domain.DebitSide
		} else {
			bal.LastTransactionAmount = line.CreditAmount
			bal.LastTransactionType = domain.CreditSide
		}
		bal.LastTransactionDate = now
	}
}

// Balance returns a copy of the account's balance record, or nil if the
// account has never appeared in a posted line.
func (e *Engine) Balance(accountCode string) *domain.AccountBalance {
	e.mu.Lock()
	defer e.mu.Unlock()

	bal, ok := e.balances[accountCode]
	if !ok {
		return nil
	}
	copied := *bal
	return &copied
}

// BalanceChange returns the delta between the account's balance and its last
// snapshot, or nil when the account is unknown or nothing moved. Direction is
// based on the arithmetic balance, not the account-type-aware meaning.
func (e *Engine) BalanceChange(accountCode string) *domain.BalanceChange {
	e.mu.Lock()
	defer e.mu.Unlock()

	bal, ok := e.balances[accountCode]
	if !ok || bal.Balance.Equal(bal.PreviousBalance) {
		return nil
	}

	change := &domain.BalanceChange{
		Amount: bal.Balance.Sub(bal.PreviousBalance).Abs(),
		Type:   domain.Decrease,
	}
	if bal.Balance.GreaterThan(bal.PreviousBalance) {
		change.Type = domain.Increase
	}
	return change
}

// NetEffect applies the fundamental accounting sign convention:
// asset/expense accounts net debit minus credit, all other types net credit
// minus debit. A zero net classifies as an increase for both conventions.
func (e *Engine) NetEffect(accountType domain.AccountType, debitAmount, creditAmount decimal.Decimal) domain.NetEffect {
	var net decimal.Decimal
	if accountType.IsDebitNormal() {
		net = debitAmount.Sub(creditAmount)
	} else {
		net = creditAmount.Sub(debitAmount)
	}

	effect := domain.Increase
	if net.IsNegative() {
		effect = domain.Decrease
	}
	return domain.NetEffect{NetEffect: net.Abs(), EffectType: effect}
}

// AvailableBalance returns the non-negative amount the account can give up:
// the raw balance for debit-normal types, the negated balance otherwise.
// Unknown accounts have zero available.
func (e *Engine) AvailableBalance(accountCode string, accountType domain.AccountType) decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()

	bal, ok := e.balances[accountCode]
	if !ok {
		return decimal.Zero
	}

	available := bal.Balance
	if !accountType.IsDebitNormal() {
		available = available.Neg()
	}
	if available.IsNegative() {
		return decimal.Zero
	}
	return available
}

// CanTransferFrom reports whether the account's absolute balance covers the
// amount. Deliberately ignores account-type semantics: the raw absolute
// balance is compared, matching the transfer precondition exactly.
func (e *Engine) CanTransferFrom(accountCode string, amount decimal.Decimal) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.canTransferFromLocked(accountCode, amount)
}

func (e *Engine) canTransferFromLocked(accountCode string, amount decimal.Decimal) bool {
	bal, ok := e.balances[accountCode]
	if !ok {
		return false
	}
	return bal.Balance.Abs().GreaterThanOrEqual(amount)
}

// Transfer synthesizes a balanced two-line posted entry moving amount from the
// source account (credited) to the destination account (debited). Precondition
// checks run in order; the first failure wins.
func (e *Engine) Transfer(req TransferRequest) (domain.JournalEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !req.Amount.IsPositive() {
		return domain.JournalEntry{}, apperrors.ErrInvalidAmount
	}
	if req.FromAccountCode == req.ToAccountCode {
		return domain.JournalEntry{}, apperrors.ErrSameAccountTransfer
	}
	if !e.canTransferFromLocked(req.FromAccountCode, req.Amount) {
		return domain.JournalEntry{}, apperrors.ErrInsufficientBalance
	}

	reference := req.Reference
	if reference == "" {
		reference = fmt.Sprintf("TRF-%d", e.now().UnixMilli())
	}
	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Transfer from %s to %s", req.FromAccountCode, req.ToAccountCode)
	}
	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy = e.defaultActor
	}

	input := EntryInput{
		EntryDate:   e.now(),
		Description: description,
		Reference:   reference,
		EntryType:   domain.EntryManual,
		Source:      domain.SourceTransfer,
		TotalDebit:  req.Amount,
		TotalCredit: req.Amount,
		Status:      domain.Posted,
		CreatedBy:   createdBy,
		Lines: []LineInput{
			{AccountCode: req.FromAccountCode, AccountName: req.FromAccountName, CreditAmount: req.Amount},
			{AccountCode: req.ToAccountCode, AccountName: req.ToAccountName, DebitAmount: req.Amount},
		},
	}

	return e.addEntryLocked(input), nil
}

// Post transitions a draft entry to posted and folds its lines into balances
// exactly once. Posting an unknown or non-draft entry is a silent no-op;
// the return value reports whether a transition happened.
func (e *Engine) Post(entryID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.entries {
		if e.entries[i].EntryID != entryID {
			continue
		}
		if e.entries[i].Status != domain.Draft {
			return false
		}
		e.entries[i].Status = domain.Posted
		e.updateBalances(e.entries[i].Lines)
		return true
	}
	return false
}

// Reverse undoes a posted entry's balance effect by folding its lines with
// debit and credit swapped, then marks the entry reversed in place. No new
// entry is added to the collection; only the balance side-effects are
// recorded. Reversing an unknown or non-posted entry is a silent no-op.
func (e *Engine) Reverse(entryID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.entries {
		if e.entries[i].EntryID != entryID {
			continue
		}
		if e.entries[i].Status != domain.Posted {
			return false
		}

		reversal := make([]domain.JournalEntryLine, len(e.entries[i].Lines))
		for j, line := range e.entries[i].Lines {
			reversal[j] = domain.JournalEntryLine{
				LineID:       line.LineID,
				AccountCode:  line.AccountCode,
				AccountName:  line.AccountName,
				DebitAmount:  line.CreditAmount,
				CreditAmount: line.DebitAmount,
			}
		}
		e.updateBalances(reversal)
		e.entries[i].Status = domain.Reversed
		return true
	}
	return false
}

// Entry returns a copy of the entry with the given ID, or nil.
func (e *Engine) Entry(entryID string) *domain.JournalEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.entries {
		if e.entries[i].EntryID == entryID {
			return copyEntry(e.entries[i])
		}
	}
	return nil
}

// Entries returns a copy of the entry collection, newest first.
func (e *Engine) Entries() []domain.JournalEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]domain.JournalEntry, len(e.entries))
	for i := range e.entries {
		out[i] = *copyEntry(e.entries[i])
	}
	return out
}

// Sequence returns the number of entries ever created by this engine.
func (e *Engine) Sequence() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seq
}

// Restore rebuilds engine state from a persisted entry log, oldest first.
// Identities, numbers and timestamps are kept as stored. Posted entries are
// folded into balances; reversed entries are folded and then unfolded, so
// their net balance effect is zero while their fold history (previous
// balance, last transaction) is reproduced. The sequence counter resumes
// after the highest restored entry number.
func (e *Engine) Restore(entries []domain.JournalEntry) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.entries = nil
	e.balances = make(map[string]*domain.AccountBalance)
	e.seq = 0

	for _, entry := range entries {
		stored := *copyEntry(entry)
		e.entries = append([]domain.JournalEntry{stored}, e.entries...)

		switch stored.Status {
		case domain.Posted:
			e.updateBalances(stored.Lines)
		case domain.Reversed:
			e.updateBalances(stored.Lines)
			swapped := make([]domain.JournalEntryLine, len(stored.Lines))
			for i, line := range stored.Lines {
				swapped[i] = domain.JournalEntryLine{
					LineID:       line.LineID,
					AccountCode:  line.AccountCode,
					AccountName:  line.AccountName,
					DebitAmount:  line.CreditAmount,
					CreditAmount: line.DebitAmount,
				}
			}
			e.updateBalances(swapped)
		}

		if seq := parseSequence(stored.EntryNumber); seq > e.seq {
			e.seq = seq
		}
	}
}

// parseSequence extracts the running sequence from a JE-YYYYMM-XXXX number.
// Returns 0 for anything that does not look like an entry number.
func parseSequence(entryNumber string) int64 {
	idx := strings.LastIndex(entryNumber, "-")
	if idx < 0 {
		return 0
	}
	seq, err := strconv.ParseInt(entryNumber[idx+1:], 10, 64)
	if err != nil {
		return 0
	}
	return seq
}

func copyEntry(entry domain.JournalEntry) *domain.JournalEntry {
	copied := entry
	copied.Lines = make([]domain.JournalEntryLine, len(entry.Lines))
	copy(copied.Lines, entry.Lines)
	return &copied
}
