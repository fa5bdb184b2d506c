package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Valid reports whether t is one of the five fundamental account types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Account represents a node in a tenant's chart of accounts.
//
// The tree uses nested-interval (nested set) encoding: every account carries
// Left/Right bounds such that a descendant's interval lies strictly inside
// its ancestor's. Bounds may be nil for rows created before the encoding was
// introduced; tree predicates fall back to parent-link queries in that case.
type Account struct {
	AccountID      string      `json:"accountID"` // Primary Key (UUID)
	TenantID       string      `json:"tenantID"`  // (tenant_id, code) is unique
	ParentID       string      `json:"parentID"`  // Nullable FK -> accounts.account_id
	Code           string      `json:"code"`      // User-facing account code, e.g. "1000"
	Name           string      `json:"name"`
	AccountType    AccountType `json:"accountType"`
	IsActive       bool        `json:"isActive"`
	Tags           []string    `json:"tags"`
	ReportingGroup string      `json:"reportingGroup"` // Optional grouping label for reports
	Left           *int64      `json:"left"`           // Nested-interval lower bound (nullable)
	Right          *int64      `json:"right"`          // Nested-interval upper bound (nullable)
	AuditFields
}

// HasBounds reports whether the nested-interval bounds are initialized.
func (a *Account) HasBounds() bool {
	return a.Left != nil && a.Right != nil
}

// IsLeafByBounds reports whether the account has no descendants according to
// its interval. Only meaningful when HasBounds is true: a leaf occupies an
// interval of width one, so no other interval can nest inside it.
func (a *Account) IsLeafByBounds() bool {
	return a.HasBounds() && *a.Right-*a.Left == 1
}

// IsAncestorOf reports whether a is a strict ancestor of b under the
// nested-interval encoding. Both accounts must belong to the same tenant and
// carry initialized bounds; otherwise the relationship is undefined and the
// method returns false.
func (a *Account) IsAncestorOf(b *Account) bool {
	if a.TenantID != b.TenantID || !a.HasBounds() || !b.HasBounds() {
		return false
	}
	return *a.Left < *b.Left && *b.Right < *a.Right
}
