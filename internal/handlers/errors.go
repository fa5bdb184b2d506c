package handlers

import (
	"errors"
	"net/http"

	"github.com/finledger/ledger-backend/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// statusForError maps the ledger error taxonomy to HTTP statuses. Business
// rule violations become 4xx, storage failures 5xx.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicateCode),
		errors.Is(err, apperrors.ErrHasTransactions),
		errors.Is(err, apperrors.ErrHasChildren):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrNonLeafPosting),
		errors.Is(err, apperrors.ErrUnbalancedJournal):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		// Do not leak storage details to API consumers.
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
