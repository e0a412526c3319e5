package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Aimecol/erp-sub001/internal/apperrors"
	portssvc "github.com/Aimecol/erp-sub001/internal/core/ports/services"
	"github.com/Aimecol/erp-sub001/internal/dto"
	"github.com/Aimecol/erp-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transferHandler handles HTTP requests for account-to-account transfers.
type transferHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newTransferHandler creates a new transferHandler.
func newTransferHandler(ledgerService portssvc.LedgerSvcFacade) *transferHandler {
	return &transferHandler{
		ledgerService: ledgerService,
	}
}

// createTransfer godoc
// @Summary Transfer money between accounts
// @Description Credits the source account, debits the destination, and records a single posted entry
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} map[string]string "Invalid amount, same account, or invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]string "Insufficient balance"
// @Failure 500 {object} map[string]string "Failed to transfer"
// @Router /transfers [post]
func (h *transferHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.TransferRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.ledgerService.Transfer(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientBalance):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to execute transfer", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to transfer"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.TransferResponse{
		EntryID: entry.EntryID,
		Entry:   dto.ToEntryResponse(entry),
	})
}

// RegisterTransferRoutes registers transfer specific routes
func RegisterTransferRoutes(group *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newTransferHandler(ledgerService)

	transfers := group.Group("/transfers")
	{
		transfers.POST("", h.createTransfer)
	}
}
