package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicateCode indicates an account code collision within a tenant.
var ErrDuplicateCode = errors.New("account code already exists within tenant")

// ErrHasTransactions blocks deletion of an account that journal lines reference.
var ErrHasTransactions = errors.New("account has associated journal lines")

// ErrHasChildren blocks deletion of an account that still has child accounts.
var ErrHasChildren = errors.New("account has child accounts")

// ErrNonLeafPosting indicates a journal line referencing a non-leaf account.
var ErrNonLeafPosting = errors.New("journal lines may only reference leaf accounts")

// ErrUnbalancedJournal indicates total debits and credits differ beyond tolerance.
var ErrUnbalancedJournal = errors.New("journal debits and credits do not balance")

// ErrAlreadyPosted indicates a mutation attempt against a posted journal.
// Posting an already-posted journal is a no-op and does not surface this error;
// adding lines to a posted journal does.
var ErrAlreadyPosted = errors.New("journal is already posted")

// StorageError wraps an unexpected persistence-layer failure. Business-rule
// sentinels above are never wrapped in a StorageError.
type StorageError struct {
	Op  string // The operation that failed, e.g. "insert journal header"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err as a StorageError for the given operation.
func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// IsBusinessError reports whether err is one of the expected business-rule
// violations, as opposed to a storage failure.
func IsBusinessError(err error) bool {
	for _, sentinel := range []error{
		ErrNotFound, ErrValidation, ErrDuplicateCode, ErrHasTransactions,
		ErrHasChildren, ErrNonLeafPosting, ErrUnbalancedJournal, ErrAlreadyPosted,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
