package journal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
)

// ValidateLines checks the line-level rules and the balance invariant:
// at least two lines, amounts never negative, exactly one side of each line
// set, and total debit equal to total credit.
func ValidateLines(lines []LineInput) error {
	if len(lines) < 2 {
		return errors.NewValidationError("at least two lines are required for a valid journal entry")
	}

	debit, credit := decimal.Zero, decimal.Zero
	for i, line := range lines {
		if strings.TrimSpace(line.AccountID) == "" {
			return errors.NewValidationError(fmt.Sprintf("line %d: account is required", i+1))
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return errors.NewValidationError(fmt.Sprintf("line %d: debit and credit must not be negative", i+1))
		}
		hasDebit, hasCredit := line.Debit.IsPositive(), line.Credit.IsPositive()
		if hasDebit == hasCredit {
			return errors.NewValidationError(fmt.Sprintf("line %d: exactly one of debit or credit must be set", i+1))
		}
		debit = debit.Add(line.Debit)
		credit = credit.Add(line.Credit)
	}

	if !debit.Equal(credit) {
		return errors.NewValidationError(fmt.Sprintf("journal entry is not balanced: debit %s != credit %s",
			debit.StringFixed(2), credit.StringFixed(2))).
			WithDetail("debit", debit.String()).
			WithDetail("credit", credit.String())
	}
	return nil
}
