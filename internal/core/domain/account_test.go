package domain_test

import (
	"testing"

	"github.com/finledger/ledger-backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func bounds(left, right int64) (*int64, *int64) {
	return &left, &right
}

func TestAccountType_Valid(t *testing.T) {
	for _, at := range []domain.AccountType{domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense} {
		assert.True(t, at.Valid(), "%s should be valid", at)
	}
	assert.False(t, domain.AccountType("").Valid())
	assert.False(t, domain.AccountType("PROFIT").Valid())
	// Types are case-sensitive.
	assert.False(t, domain.AccountType("asset").Valid())
}

func TestAccount_HasBounds(t *testing.T) {
	var account domain.Account
	assert.False(t, account.HasBounds())

	account.Left, account.Right = bounds(1, 2)
	assert.True(t, account.HasBounds())

	account.Right = nil
	assert.False(t, account.HasBounds())
}

func TestAccount_IsLeafByBounds(t *testing.T) {
	leaf := domain.Account{}
	leaf.Left, leaf.Right = bounds(2, 3)
	assert.True(t, leaf.IsLeafByBounds())

	parent := domain.Account{}
	parent.Left, parent.Right = bounds(1, 4)
	assert.False(t, parent.IsLeafByBounds())

	// Without bounds the predicate is undefined and reports false; callers
	// fall back to counting children.
	assert.False(t, (&domain.Account{}).IsLeafByBounds())
}

func TestAccount_IsAncestorOf(t *testing.T) {
	root := domain.Account{TenantID: "t1"}
	root.Left, root.Right = bounds(1, 8)
	child := domain.Account{TenantID: "t1"}
	child.Left, child.Right = bounds(2, 5)
	grandchild := domain.Account{TenantID: "t1"}
	grandchild.Left, grandchild.Right = bounds(3, 4)
	sibling := domain.Account{TenantID: "t1"}
	sibling.Left, sibling.Right = bounds(6, 7)

	assert.True(t, root.IsAncestorOf(&child))
	assert.True(t, root.IsAncestorOf(&grandchild))
	assert.True(t, child.IsAncestorOf(&grandchild))

	assert.False(t, child.IsAncestorOf(&root))
	assert.False(t, child.IsAncestorOf(&sibling))
	assert.False(t, grandchild.IsAncestorOf(&child))
	assert.False(t, root.IsAncestorOf(&root))
}

func TestAccount_IsAncestorOf_CrossTenant(t *testing.T) {
	a := domain.Account{TenantID: "t1"}
	a.Left, a.Right = bounds(1, 8)
	b := domain.Account{TenantID: "t2"}
	b.Left, b.Right = bounds(2, 3)

	// Intervals from different tenants never relate, even when they nest
	// numerically.
	assert.False(t, a.IsAncestorOf(&b))
}

func TestAccount_IsAncestorOf_MissingBounds(t *testing.T) {
	a := domain.Account{TenantID: "t1"}
	a.Left, a.Right = bounds(1, 8)
	legacy := domain.Account{TenantID: "t1"}

	assert.False(t, a.IsAncestorOf(&legacy))
	assert.False(t, legacy.IsAncestorOf(&a))
}
