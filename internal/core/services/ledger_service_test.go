package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Aimecol/erp-sub001/internal/apperrors"
	"github.com/Aimecol/erp-sub001/internal/core/domain"
	"github.com/Aimecol/erp-sub001/internal/core/ledger"
	portsrepo "github.com/Aimecol/erp-sub001/internal/core/ports/repositories"
	portssvc "github.com/Aimecol/erp-sub001/internal/core/ports/services"
	"github.com/Aimecol/erp-sub001/internal/core/services"
	"github.com/Aimecol/erp-sub001/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock EntryRepository ---
type MockEntryRepository struct {
	mock.Mock
}

// Ensure MockEntryRepository implements portsrepo.EntryRepositoryFacade
var _ portsrepo.EntryRepositoryFacade = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedAt time.Time) error {
	args := m.Called(ctx, entryID, status, updatedAt)
	return args.Error(0)
}

func (m *MockEntryRepository) ListEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

// --- Test Suite ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockEntryRepo *MockEntryRepository
	engine        *ledger.Engine
	service       portssvc.LedgerSvcFacade
	ctx           context.Context
	userID        string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.engine = ledger.New()
	suite.service = services.NewLedgerService(suite.engine, suite.mockEntryRepo)
	suite.ctx = context.Background()
	suite.userID = uuid.NewString()
}

func (suite *LedgerServiceTestSuite) balancedRequest() dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		EntryDate:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Office supplies",
		EntryType:   domain.EntryManual,
		Source:      domain.SourceGeneral,
		Status:      domain.Posted,
		Lines: []dto.CreateEntryLineRequest{
			{AccountCode: "6100", DebitAmount: decimal.NewFromInt(120)},
			{AccountCode: "1000", CreditAmount: decimal.NewFromInt(120)},
		},
	}
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_Success() {
	suite.mockEntryRepo.On("SaveEntry", suite.ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(suite.ctx, suite.balancedRequest(), suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.Posted, entry.Status)
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.True(entry.TotalDebit.Equal(decimal.NewFromInt(120)), "totals default to line sums")
	suite.True(entry.TotalCredit.Equal(decimal.NewFromInt(120)))
	suite.mockEntryRepo.AssertExpectations(suite.T())

	bal, err := suite.service.GetBalance(suite.ctx, "6100")
	suite.Require().NoError(err)
	suite.True(bal.Balance.Equal(decimal.NewFromInt(120)))
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_Unbalanced() {
	req := suite.balancedRequest()
	req.Lines[1].CreditAmount = decimal.NewFromInt(100)

	_, err := suite.service.CreateEntry(suite.ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_LineSetsBothSides() {
	req := suite.balancedRequest()
	req.Lines[0].CreditAmount = decimal.NewFromInt(120)
	req.Lines[0].DebitAmount = decimal.NewFromInt(120)

	_, err := suite.service.CreateEntry(suite.ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_NegativeAmount() {
	req := suite.balancedRequest()
	req.Lines[0].DebitAmount = decimal.NewFromInt(-120)

	_, err := suite.service.CreateEntry(suite.ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_DeclaredTotalMismatch() {
	req := suite.balancedRequest()
	req.TotalDebit = decimal.NewFromInt(999)

	_, err := suite.service.CreateEntry(suite.ctx, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_SaveError() {
	suite.mockEntryRepo.On("SaveEntry", suite.ctx, mock.AnythingOfType("domain.JournalEntry")).Return(errors.New("db down")).Once()

	_, err := suite.service.CreateEntry(suite.ctx, suite.balancedRequest(), suite.userID)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "failed to persist entry")
}

func (suite *LedgerServiceTestSuite) TestGetEntryByID() {
	suite.mockEntryRepo.On("SaveEntry", suite.ctx, mock.Anything).Return(nil).Once()
	created, err := suite.service.CreateEntry(suite.ctx, suite.balancedRequest(), suite.userID)
	suite.Require().NoError(err)

	found, err := suite.service.GetEntryByID(suite.ctx, created.EntryID)
	suite.Require().NoError(err)
	suite.Equal(created.EntryNumber, found.EntryNumber)

	_, err = suite.service.GetEntryByID(suite.ctx, "missing")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestListEntries_Pagination() {
	suite.mockEntryRepo.On("SaveEntry", suite.ctx, mock.Anything).Return(nil).Times(5)
	for i := 0; i < 5; i++ {
		_, err := suite.service.CreateEntry(suite.ctx, suite.balancedRequest(), suite.userID)
		suite.Require().NoError(err)
	}

	page1, err := suite.service.ListEntries(suite.ctx, dto.ListEntriesParams{Limit: 2})
	suite.Require().NoError(err)
	suite.Len(page1.Entries, 2)
	suite.Require().NotNil(page1.NextToken)

	page2, err := suite.service.ListEntries(suite.ctx, dto.ListEntriesParams{Limit: 2, NextToken: page1.NextToken})
	suite.Require().NoError(err)
	suite.Len(page2.Entries, 2)
	suite.Require().NotNil(page2.NextToken)
	suite.NotEqual(page1.Entries[0].EntryID, page2.Entries[0].EntryID)

	page3, err := suite.service.ListEntries(suite.ctx, dto.ListEntriesParams{Limit: 2, NextToken: page2.NextToken})
	suite.Require().NoError(err)
	suite.Len(page3.Entries, 1)
	suite.Nil(page3.NextToken, "last page has no cursor")
}

func (suite *LedgerServiceTestSuite) TestListEntries_InvalidToken() {
	bad := "not-a-token"
	_, err := suite.service.ListEntries(suite.ctx, dto.ListEntriesParams{NextToken: &bad})
	suite.Require().Error(err)
}

func (suite *LedgerServiceTestSuite) TestPostEntry() {
	suite.mockEntryRepo.On("SaveEntry", suite.ctx, mock.Anything).Return(nil).Once()
	req := suite.balancedRequest()
	req.Status = domain.Draft
	created, err := suite.service.CreateEntry(suite.ctx, req, suite.userID)
	suite.Require().NoError(err)

	suite.mockEntryRepo.On("UpdateEntryStatus", suite.ctx, created.EntryID, domain.Posted, mock.AnythingOfType("time.Time")).Return(nil).Once()

	entry, changed, err := suite.service.PostEntry(suite.ctx, created.EntryID, suite.userID)
	suite.Require().NoError(err)
	suite.True(changed)
	suite.Equal(domain.Posted, entry.Status)
	suite.mockEntryRepo.AssertExpectations(suite.T())

	// Second post is a no-op and must not hit the log again.
	entry, changed, err = suite.service.PostEntry(suite.ctx, created.EntryID, suite.userID)
	suite.Require().NoError(err)
	suite.False(changed)
	suite.Equal(domain.Posted, entry.Status)
	suite.mockEntryRepo.AssertNumberOfCalls(suite.T(), "UpdateEntryStatus", 1)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_NotFound() {
	_, _, err := suite.service.PostEntry(suite.ctx, "missing", suite.userID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestReverseEntry() {
	suite.mockEntryRepo.On("SaveEntry", suite.ctx, mock.Anything).Return(nil).Once()
	created, err := suite.service.CreateEntry(suite.ctx, suite.balancedRequest(), suite.userID)
	suite.Require().NoError(err)

	suite.mockEntryRepo.On("UpdateEntryStatus", suite.ctx, created.EntryID, domain.Reversed, mock.AnythingOfType("time.Time")).Return(nil).Once()

	entry, changed, err := suite.service.ReverseEntry(suite.ctx, created.EntryID, suite.userID)
	suite.Require().NoError(err)
	suite.True(changed)
	suite.Equal(domain.Reversed, entry.Status)

	bal, err := suite.service.GetBalance(suite.ctx, "6100")
	suite.Require().NoError(err)
	suite.True(bal.Balance.IsZero(), "reversal nets the effect back out")

	// Reversing a reversed entry is a no-op.
	_, changed, err = suite.service.ReverseEntry(suite.ctx, created.EntryID, suite.userID)
	suite.Require().NoError(err)
	suite.False(changed)
	suite.mockEntryRepo.AssertNumberOfCalls(suite.T(), "UpdateEntryStatus", 1)
}

func (suite *LedgerServiceTestSuite) TestTransfer() {
	suite.mockEntryRepo.On("SaveEntry", suite.ctx, mock.Anything).Return(nil).Times(2)
	seed := suite.balancedRequest()
	seed.Lines = []dto.CreateEntryLineRequest{
		{AccountCode: "1000", DebitAmount: decimal.NewFromInt(500)},
		{AccountCode: "3000", CreditAmount: decimal.NewFromInt(500)},
	}
	_, err := suite.service.CreateEntry(suite.ctx, seed, suite.userID)
	suite.Require().NoError(err)

	entry, err := suite.service.Transfer(suite.ctx, dto.TransferRequest{
		FromAccountCode: "1000",
		ToAccountCode:   "1100",
		Amount:          decimal.NewFromInt(200),
	}, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(domain.SourceTransfer, entry.Source)
	suite.Equal(suite.userID, entry.CreatedBy)

	suite.True(suite.service.CanTransferFrom(suite.ctx, "1100", decimal.NewFromInt(200)))
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestTransfer_TypedErrors() {
	_, err := suite.service.Transfer(suite.ctx, dto.TransferRequest{
		FromAccountCode: "1000",
		ToAccountCode:   "1000",
		Amount:          decimal.Zero,
	}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)

	_, err = suite.service.Transfer(suite.ctx, dto.TransferRequest{
		FromAccountCode: "1000",
		ToAccountCode:   "1000",
		Amount:          decimal.NewFromInt(10),
	}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrSameAccountTransfer)

	_, err = suite.service.Transfer(suite.ctx, dto.TransferRequest{
		FromAccountCode: "1000",
		ToAccountCode:   "2000",
		Amount:          decimal.NewFromInt(10),
	}, suite.userID)
	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)

	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestBalanceQueries() {
	suite.mockEntryRepo.On("SaveEntry", suite.ctx, mock.Anything).Return(nil).Once()
	_, err := suite.service.CreateEntry(suite.ctx, suite.balancedRequest(), suite.userID)
	suite.Require().NoError(err)

	change, err := suite.service.GetBalanceChange(suite.ctx, "6100")
	suite.Require().NoError(err)
	suite.Require().NotNil(change)
	suite.Equal(domain.Increase, change.Type)

	change, err = suite.service.GetBalanceChange(suite.ctx, "unknown")
	suite.Require().NoError(err)
	suite.Nil(change)

	effect := suite.service.NetEffect(domain.Expense, decimal.NewFromInt(120), decimal.Zero)
	suite.Equal(domain.Increase, effect.EffectType)
	suite.True(effect.NetEffect.Equal(decimal.NewFromInt(120)))

	available := suite.service.GetAvailableBalance(suite.ctx, "6100", domain.Expense)
	suite.True(available.Equal(decimal.NewFromInt(120)))

	_, err = suite.service.GetBalance(suite.ctx, "unknown")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestRestoreFromLog() {
	// Build a log in a throwaway engine, oldest first.
	seedEngine := ledger.New()
	posted := seedEngine.AddEntry(ledger.EntryInput{
		Status:      domain.Posted,
		Description: "seed",
		Lines: []ledger.LineInput{
			{AccountCode: "1000", DebitAmount: decimal.NewFromInt(300)},
			{AccountCode: "3000", CreditAmount: decimal.NewFromInt(300)},
		},
	})

	suite.mockEntryRepo.On("ListEntries", suite.ctx).Return([]domain.JournalEntry{posted}, nil).Once()

	err := suite.service.RestoreFromLog(suite.ctx)
	suite.Require().NoError(err)

	bal, err := suite.service.GetBalance(suite.ctx, "1000")
	suite.Require().NoError(err)
	suite.True(bal.Balance.Equal(decimal.NewFromInt(300)))

	// The sequence resumes after the restored entry.
	suite.mockEntryRepo.On("SaveEntry", suite.ctx, mock.Anything).Return(nil).Once()
	next, err := suite.service.CreateEntry(suite.ctx, suite.balancedRequest(), suite.userID)
	suite.Require().NoError(err)
	suite.NotEqual(posted.EntryNumber, next.EntryNumber)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRestoreFromLog_RepoError() {
	suite.mockEntryRepo.On("ListEntries", suite.ctx).Return(nil, errors.New("db down")).Once()

	err := suite.service.RestoreFromLog(suite.ctx)
	suite.Require().Error(err)
	suite.Contains(err.Error(), "failed to load entry log")
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
