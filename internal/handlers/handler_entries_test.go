package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Aimecol/erp-sub001/internal/apperrors"
	"github.com/Aimecol/erp-sub001/internal/core/domain"
	portssvc "github.com/Aimecol/erp-sub001/internal/core/ports/services"
	"github.com/Aimecol/erp-sub001/internal/dto"
	"github.com/Aimecol/erp-sub001/internal/handlers"
	"github.com/Aimecol/erp-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

func (m *MockLedgerService) PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, bool, error) {
	args := m.Called(ctx, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.JournalEntry), args.Bool(1), args.Error(2)
}

func (m *MockLedgerService) ReverseEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, bool, error) {
	args := m.Called(ctx, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.JournalEntry), args.Bool(1), args.Error(2)
}

func (m *MockLedgerService) Transfer(ctx context.Context, req dto.TransferRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerService) GetBalance(ctx context.Context, accountCode string) (*domain.AccountBalance, error) {
	args := m.Called(ctx, accountCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

func (m *MockLedgerService) GetBalanceChange(ctx context.Context, accountCode string) (*domain.BalanceChange, error) {
	args := m.Called(ctx, accountCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceChange), args.Error(1)
}

func (m *MockLedgerService) NetEffect(accountType domain.AccountType, debitAmount, creditAmount decimal.Decimal) domain.NetEffect {
	args := m.Called(accountType, debitAmount, creditAmount)
	return args.Get(0).(domain.NetEffect)
}

func (m *MockLedgerService) GetAvailableBalance(ctx context.Context, accountCode string, accountType domain.AccountType) decimal.Decimal {
	args := m.Called(ctx, accountCode, accountType)
	return args.Get(0).(decimal.Decimal)
}

func (m *MockLedgerService) CanTransferFrom(ctx context.Context, accountCode string, amount decimal.Decimal) bool {
	args := m.Called(ctx, accountCode, amount)
	return args.Bool(0)
}

func (m *MockLedgerService) RestoreFromLog(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Test Suite ---
type LedgerHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
	jwtSecret         string
	userID            string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *LedgerHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "ledger-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tsignedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return tsignedString
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockLedgerService = new(MockLedgerService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterEntryRoutes(v1, suite.mockLedgerService)
	handlers.RegisterTransferRoutes(v1, suite.mockLedgerService)
	handlers.RegisterBalanceRoutes(v1, suite.mockLedgerService)
}

func (suite *LedgerHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *LedgerHandlerTestSuite) sampleEntry() *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		EntryNumber: "JE-202403-0001",
		EntryDate:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Office supplies",
		EntryType:   domain.EntryManual,
		Source:      domain.SourceGeneral,
		TotalDebit:  decimal.NewFromInt(120),
		TotalCredit: decimal.NewFromInt(120),
		Status:      domain.Posted,
		CreatedBy:   suite.userID,
		CreatedAt:   time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		Lines: []domain.JournalEntryLine{
			{LineID: uuid.NewString(), AccountCode: "6100", DebitAmount: decimal.NewFromInt(120)},
			{LineID: uuid.NewString(), AccountCode: "1000", CreditAmount: decimal.NewFromInt(120)},
		},
	}
}

func (suite *LedgerHandlerTestSuite) TestCreateEntry_Success() {
	expected := suite.sampleEntry()
	suite.mockLedgerService.On("CreateEntry", mock.Anything, mock.AnythingOfType("dto.CreateEntryRequest"), suite.userID).Return(expected, nil).Once()

	body := gin.H{
		"entryDate":   "2024-03-15T00:00:00Z",
		"description": "Office supplies",
		"entryType":   "manual",
		"source":      "general",
		"status":      "posted",
		"lines": []gin.H{
			{"accountCode": "6100", "debitAmount": "120"},
			{"accountCode": "1000", "creditAmount": "120"},
		},
	}
	w := suite.do(http.MethodPost, "/api/v1/entries", body)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.EntryNumber, resp.EntryNumber)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestCreateEntry_ValidationError() {
	suite.mockLedgerService.On("CreateEntry", mock.Anything, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("%w: entry does not balance", apperrors.ErrValidation)).Once()

	body := gin.H{
		"entryDate":   "2024-03-15T00:00:00Z",
		"description": "Broken",
		"entryType":   "manual",
		"source":      "general",
		"lines": []gin.H{
			{"accountCode": "6100", "debitAmount": "120"},
			{"accountCode": "1000", "creditAmount": "80"},
		},
	}
	w := suite.do(http.MethodPost, "/api/v1/entries", body)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestCreateEntry_Unauthorized() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewBufferString("{}"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestGetEntry_NotFound() {
	suite.mockLedgerService.On("GetEntryByID", mock.Anything, "missing").
		Return(nil, fmt.Errorf("entry missing: %w", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/entries/missing", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestListEntries() {
	expected := &dto.ListEntriesResponse{
		Entries: dto.ToEntryResponses([]domain.JournalEntry{*suite.sampleEntry()}),
	}
	suite.mockLedgerService.On("ListEntries", mock.Anything, dto.ListEntriesParams{Limit: 10}).Return(expected, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/entries?limit=10", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListEntriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Entries, 1)
}

func (suite *LedgerHandlerTestSuite) TestPostEntry_NoOpReported() {
	entry := suite.sampleEntry()
	suite.mockLedgerService.On("PostEntry", mock.Anything, entry.EntryID, suite.userID).Return(entry, false, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/entries/"+entry.EntryID+"/post", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.EntryMutationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Changed)
}

func (suite *LedgerHandlerTestSuite) TestReverseEntry_Success() {
	entry := suite.sampleEntry()
	entry.Status = domain.Reversed
	suite.mockLedgerService.On("ReverseEntry", mock.Anything, entry.EntryID, suite.userID).Return(entry, true, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/entries/"+entry.EntryID+"/reverse", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.EntryMutationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Changed)
	suite.Equal(domain.Reversed, resp.Entry.Status)
}

func (suite *LedgerHandlerTestSuite) TestTransfer_InsufficientBalance() {
	suite.mockLedgerService.On("Transfer", mock.Anything, mock.AnythingOfType("dto.TransferRequest"), suite.userID).
		Return(nil, apperrors.ErrInsufficientBalance).Once()

	body := gin.H{"fromAccountCode": "1000", "toAccountCode": "1100", "amount": "500"}
	w := suite.do(http.MethodPost, "/api/v1/transfers", body)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestTransfer_Success() {
	entry := suite.sampleEntry()
	entry.Source = domain.SourceTransfer
	suite.mockLedgerService.On("Transfer", mock.Anything, mock.AnythingOfType("dto.TransferRequest"), suite.userID).Return(entry, nil).Once()

	body := gin.H{"fromAccountCode": "1000", "toAccountCode": "1100", "amount": "50"}
	w := suite.do(http.MethodPost, "/api/v1/transfers", body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransferResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(entry.EntryID, resp.EntryID)
}

func (suite *LedgerHandlerTestSuite) TestGetBalance_NotFound() {
	suite.mockLedgerService.On("GetBalance", mock.Anything, "9999").
		Return(nil, fmt.Errorf("account 9999: %w", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/9999/balance", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestGetAvailableBalance_InvalidType() {
	w := suite.do(http.MethodGet, "/api/v1/accounts/1000/balance/available?accountType=fancy", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "GetAvailableBalance", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestGetNetEffect() {
	suite.mockLedgerService.On("NetEffect", domain.Asset, decimal.NewFromInt(100), decimal.NewFromInt(30)).
		Return(domain.NetEffect{NetEffect: decimal.NewFromInt(70), EffectType: domain.Increase}).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/1000/balance/net-effect?accountType=asset&debitAmount=100&creditAmount=30", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.NetEffectResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.Increase, resp.EffectType)
}

func (suite *LedgerHandlerTestSuite) TestGetTransferable() {
	suite.mockLedgerService.On("CanTransferFrom", mock.Anything, "1000", decimal.NewFromInt(25)).Return(true).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/1000/transferable?amount=25", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TransferableResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.CanTransfer)
}

func TestLedgerHandlers(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
