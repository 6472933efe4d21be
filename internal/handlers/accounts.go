package handlers

import (
	"context"

	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// AccountService is what AccountHandler needs for account administration.
type AccountService interface {
	GetAllAccounts(ctx context.Context) ([]models.AccountResponse, error)
	GetAccountByID(ctx context.Context, id uint) (*models.AccountResponse, error)
	DeleteAccount(ctx context.Context, id uint) (*models.AccountResponse, error)
	RestoreAccount(ctx context.Context, id uint) (*models.AccountResponse, error)
}

// AccountHandler handles account administration (admin operations).
type AccountHandler struct {
	accounts AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// GetAccounts lists every account, deleted ones included.
func (h *AccountHandler) GetAccounts(c *gin.Context) {
	accounts, err := h.accounts.GetAllAccounts(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Accounts fetched successfully", accounts)
}

func (h *AccountHandler) GetAccountByID(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	account, err := h.accounts.GetAccountByID(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Account fetched successfully", account)
}

// DeleteAccount soft-deletes an account.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	account, err := h.accounts.DeleteAccount(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Account deleted successfully", account)
}

func (h *AccountHandler) RestoreAccount(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	account, err := h.accounts.RestoreAccount(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Account restored successfully", account)
}
