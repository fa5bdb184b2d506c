package dto

import (
	"time"

	"github.com/finledger/ledger-backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account,
// either at the root of the tenant's chart or (via the child endpoint)
// underneath an existing parent.
type CreateAccountRequest struct {
	Code           string             `json:"code" binding:"required"`
	Name           string             `json:"name" binding:"required"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,accounttype"`
	Tags           []string           `json:"tags"`           // Optional free-form labels
	ReportingGroup string             `json:"reportingGroup"` // Optional
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string             `json:"accountID"`
	TenantID       string             `json:"tenantID"`
	ParentID       string             `json:"parentID"` // Empty string if root
	Code           string             `json:"code"`
	Name           string             `json:"name"`
	AccountType    domain.AccountType `json:"accountType"`
	IsActive       bool               `json:"isActive"`
	Tags           []string           `json:"tags"`
	ReportingGroup string             `json:"reportingGroup"`
	Left           *int64             `json:"left"`
	Right          *int64             `json:"right"`
	IsLeaf         bool               `json:"isLeaf"`
	CreatedAt      time.Time          `json:"createdAt"`
	CreatedBy      string             `json:"createdBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		TenantID:       acc.TenantID,
		ParentID:       acc.ParentID,
		Code:           acc.Code,
		Name:           acc.Name,
		AccountType:    acc.AccountType,
		IsActive:       acc.IsActive,
		Tags:           acc.Tags,
		ReportingGroup: acc.ReportingGroup,
		Left:           acc.Left,
		Right:          acc.Right,
		IsLeaf:         acc.IsLeafByBounds(),
		CreatedAt:      acc.CreatedAt,
		CreatedBy:      acc.CreatedBy,
	}
}

// ToAccountTreeResponse converts a lft-ordered slice of accounts. The order is
// preserved, so the result is a valid pre-order traversal of the tree.
func ToAccountTreeResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
