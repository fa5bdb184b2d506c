package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finledger/ledger-backend/internal/core/ports/services"
	"github.com/finledger/ledger-backend/internal/dto"
	"github.com/finledger/ledger-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal posting.
type journalHandler struct {
	postingService portssvc.PostingSvcFacade
}

func newJournalHandler(ps portssvc.PostingSvcFacade) *journalHandler {
	return &journalHandler{postingService: ps}
}

// registerJournalRoutes registers routes related to journals.
func registerJournalRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newJournalHandler(postingService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.postJournal)
		journals.GET("/:id", h.getJournal)
		journals.POST("/:id/post", h.post)
	}
}

func (h *journalHandler) postJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, _ := middleware.GetTenantIDFromContext(c)
	actorID, _ := middleware.GetActorIDFromContext(c)

	entry, err := h.postingService.PostJournal(c.Request.Context(), tenantID, req, actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalResponse(entry, nil))
}

func (h *journalHandler) getJournal(c *gin.Context) {
	tenantID, _ := middleware.GetTenantIDFromContext(c)

	entry, lines, err := h.postingService.GetJournal(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(entry, lines))
}

// post re-issues the posted flag for a journal. Safe to retry: posting an
// already-posted journal is a no-op.
func (h *journalHandler) post(c *gin.Context) {
	tenantID, _ := middleware.GetTenantIDFromContext(c)

	if err := h.postingService.Post(c.Request.Context(), tenantID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"journalID": c.Param("id"), "isPosted": true})
}
