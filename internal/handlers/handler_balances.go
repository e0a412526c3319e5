package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Aimecol/erp-sub001/internal/apperrors"
	"github.com/Aimecol/erp-sub001/internal/core/domain"
	portssvc "github.com/Aimecol/erp-sub001/internal/core/ports/services"
	"github.com/Aimecol/erp-sub001/internal/dto"
	"github.com/Aimecol/erp-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// balanceHandler handles HTTP requests for account balance queries.
type balanceHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newBalanceHandler creates a new balanceHandler.
func newBalanceHandler(ledgerService portssvc.LedgerSvcFacade) *balanceHandler {
	return &balanceHandler{
		ledgerService: ledgerService,
	}
}

// bindAccountType parses and validates the accountType query parameter.
func bindAccountType(c *gin.Context) (domain.AccountType, bool) {
	raw := c.Query("accountType")
	accountType := domain.NormalizeAccountType(domain.AccountType(raw))
	switch accountType {
	case domain.Asset, domain.Liability, domain.Equity, domain.Income, domain.Revenue, domain.Expense:
		return accountType, true
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "accountType must be one of asset, liability, equity, income, revenue, expense"})
	return "", false
}

// getBalance godoc
// @Summary Get an account's running balance
// @Description Returns the folded balance record for an account code
// @Tags balances
// @Produce  json
// @Param   accountCode path string true "Account Code"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} map[string]string "Account has no recorded activity"
// @Router /accounts/{accountCode}/balance [get]
func (h *balanceHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountCode := c.Param("accountCode")

	bal, err := h.ledgerService.GetBalance(c.Request.Context(), accountCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Balance not found", slog.String("account_code", accountCode))
			c.JSON(http.StatusNotFound, gin.H{"error": "Account has no recorded activity"})
			return
		}
		logger.Error("Failed to get balance", slog.String("error", err.Error()), slog.String("account_code", accountCode))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(bal))
}

// getBalanceChange godoc
// @Summary Get the change since the last balance snapshot
// @Description Returns the delta between balance and previousBalance; change is null when nothing moved
// @Tags balances
// @Produce  json
// @Param   accountCode path string true "Account Code"
// @Success 200 {object} dto.BalanceChangeResponse
// @Router /accounts/{accountCode}/balance/change [get]
func (h *balanceHandler) getBalanceChange(c *gin.Context) {
	accountCode := c.Param("accountCode")

	change, err := h.ledgerService.GetBalanceChange(c.Request.Context(), accountCode)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to get balance change", slog.String("error", err.Error()), slog.String("account_code", accountCode))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balance change"})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceChangeResponse{
		AccountCode: accountCode,
		Change:      change,
	})
}

// getAvailableBalance godoc
// @Summary Get the transferable amount for an account
// @Description Returns the non-negative available balance given the account's type
// @Tags balances
// @Produce  json
// @Param   accountCode path string true "Account Code"
// @Param   accountType query string true "Account Type"
// @Success 200 {object} dto.AvailableBalanceResponse
// @Failure 400 {object} map[string]string "Invalid account type"
// @Router /accounts/{accountCode}/balance/available [get]
func (h *balanceHandler) getAvailableBalance(c *gin.Context) {
	accountCode := c.Param("accountCode")
	accountType, ok := bindAccountType(c)
	if !ok {
		return
	}

	available := h.ledgerService.GetAvailableBalance(c.Request.Context(), accountCode, accountType)

	c.JSON(http.StatusOK, dto.AvailableBalanceResponse{
		AccountCode:      accountCode,
		AccountType:      accountType,
		AvailableBalance: available,
	})
}

// getNetEffect godoc
// @Summary Calculate the net effect of a debit/credit pair
// @Description Applies the account type's sign convention to a debit and credit amount
// @Tags balances
// @Produce  json
// @Param   accountCode path string true "Account Code"
// @Param   accountType query string true "Account Type"
// @Param   debitAmount query string true "Debit Amount"
// @Param   creditAmount query string true "Credit Amount"
// @Success 200 {object} dto.NetEffectResponse
// @Failure 400 {object} map[string]string "Invalid account type or amount"
// @Router /accounts/{accountCode}/balance/net-effect [get]
func (h *balanceHandler) getNetEffect(c *gin.Context) {
	accountCode := c.Param("accountCode")
	accountType, ok := bindAccountType(c)
	if !ok {
		return
	}

	debitAmount, err := decimal.NewFromString(c.DefaultQuery("debitAmount", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "debitAmount must be a decimal number"})
		return
	}
	creditAmount, err := decimal.NewFromString(c.DefaultQuery("creditAmount", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "creditAmount must be a decimal number"})
		return
	}

	effect := h.ledgerService.NetEffect(accountType, debitAmount, creditAmount)

	c.JSON(http.StatusOK, dto.NetEffectResponse{
		AccountCode: accountCode,
		AccountType: accountType,
		NetEffect:   effect.NetEffect,
		EffectType:  effect.EffectType,
	})
}

// getTransferable godoc
// @Summary Check whether an account can cover an amount
// @Description Compares the account's absolute balance against the requested amount
// @Tags balances
// @Produce  json
// @Param   accountCode path string true "Account Code"
// @Param   amount query string true "Amount"
// @Success 200 {object} dto.TransferableResponse
// @Failure 400 {object} map[string]string "Invalid amount"
// @Router /accounts/{accountCode}/transferable [get]
func (h *balanceHandler) getTransferable(c *gin.Context) {
	accountCode := c.Param("accountCode")

	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a decimal number"})
		return
	}

	canTransfer := h.ledgerService.CanTransferFrom(c.Request.Context(), accountCode, amount)

	c.JSON(http.StatusOK, dto.TransferableResponse{
		AccountCode: accountCode,
		Amount:      amount,
		CanTransfer: canTransfer,
	})
}

// RegisterBalanceRoutes registers account balance query routes
func RegisterBalanceRoutes(group *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newBalanceHandler(ledgerService)

	accounts := group.Group("/accounts/:accountCode")
	{
		accounts.GET("/balance", h.getBalance)
		accounts.GET("/balance/change", h.getBalanceChange)
		accounts.GET("/balance/available", h.getAvailableBalance)
		accounts.GET("/balance/net-effect", h.getNetEffect)
		accounts.GET("/transferable", h.getTransferable)
	}
}
