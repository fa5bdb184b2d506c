package accounting

import (
	"github.com/finledger/ledger-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceEpsilon is the tolerance used when comparing total debits against
// total credits. Amounts are exact decimals, so in practice balanced journals
// differ by exactly zero; the epsilon absorbs rounding done by upstream
// systems that produce the line amounts.
var BalanceEpsilon = decimal.NewFromFloat(0.00001)

// SumLines accumulates total debits and credits across all lines of a journal.
func SumLines(lines []domain.JournalLine) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, line := range lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	return debits, credits
}

// Balanced reports whether debits and credits agree within BalanceEpsilon.
func Balanced(debits, credits decimal.Decimal) bool {
	return debits.Sub(credits).Abs().LessThanOrEqual(BalanceEpsilon)
}
