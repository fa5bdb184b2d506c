package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finledger/ledger-backend/internal/core/ports/services"
	"github.com/finledger/ledger-backend/internal/dto"
	"github.com/finledger/ledger-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.POST("/:id/children", h.addChildAccount)
		accounts.GET("/tree", h.getTree)
		accounts.GET("/by-code/:code", h.getAccountByCode)
		accounts.GET("/:id", h.getAccount)
		accounts.GET("/:id/leaf", h.isLeaf)
		accounts.DELETE("/:id", h.deleteAccount)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, _ := middleware.GetTenantIDFromContext(c)
	actorID, _ := middleware.GetActorIDFromContext(c)

	account, err := h.accountService.CreateAccount(c.Request.Context(), tenantID, req, actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) addChildAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddChildAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, _ := middleware.GetTenantIDFromContext(c)
	actorID, _ := middleware.GetActorIDFromContext(c)
	parentID := c.Param("id")

	account, err := h.accountService.AddChildAccount(c.Request.Context(), tenantID, parentID, req, actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) getAccount(c *gin.Context) {
	tenantID, _ := middleware.GetTenantIDFromContext(c)

	account, err := h.accountService.GetAccountByID(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) getAccountByCode(c *gin.Context) {
	tenantID, _ := middleware.GetTenantIDFromContext(c)

	account, err := h.accountService.GetAccountByCode(c.Request.Context(), tenantID, c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) getTree(c *gin.Context) {
	tenantID, _ := middleware.GetTenantIDFromContext(c)

	accounts, err := h.accountService.GetTree(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToAccountTreeResponse(accounts)})
}

func (h *accountHandler) isLeaf(c *gin.Context) {
	tenantID, _ := middleware.GetTenantIDFromContext(c)

	leaf, err := h.accountService.IsLeaf(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accountID": c.Param("id"), "isLeaf": leaf})
}

func (h *accountHandler) deleteAccount(c *gin.Context) {
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	actorID, _ := middleware.GetActorIDFromContext(c)

	if err := h.accountService.DeleteAccount(c.Request.Context(), tenantID, c.Param("id"), actorID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
