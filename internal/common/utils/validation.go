package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

var (
	// AccountCodeRegex validates chart-of-accounts codes such as 1000 or 4000-01
	AccountCodeRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.\-]{0,31}$`)

	// DateRegex validates ISO 8601 date strings (YYYY-MM-DD)
	DateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidateAccountCode validates an account code
func ValidateAccountCode(code string) error {
	if !AccountCodeRegex.MatchString(strings.TrimSpace(code)) {
		return errors.NewValidationError("invalid account code, use letters, digits, dots or dashes (e.g. 1000 or 4000-01)")
	}
	return nil
}

// ValidateISODate validates an ISO 8601 date string (YYYY-MM-DD)
func ValidateISODate(date string) error {
	_, err := ParseISODate(date)
	return err
}

// ParseISODate parses a YYYY-MM-DD date into a UTC midnight time.
func ParseISODate(date string) (time.Time, error) {
	if !DateRegex.MatchString(date) {
		return time.Time{}, errors.NewValidationError("invalid date format, should be YYYY-MM-DD")
	}

	// Parse the date to ensure it's valid
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, errors.NewValidationError("invalid date value")
	}
	return t, nil
}

// ValidateRequiredString validates that a string is not empty
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewValidationError(fieldName + " is required")
	}
	return nil
}

// ValidateNonNegative validates that an amount is zero or positive
func ValidateNonNegative(value decimal.Decimal, fieldName string) error {
	if value.IsNegative() {
		return errors.NewValidationError(fmt.Sprintf("%s must not be negative", fieldName))
	}
	return nil
}

// ValidatePercentage validates a rate expressed in percent
func ValidatePercentage(value decimal.Decimal, fieldName string) error {
	if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(100)) {
		return errors.NewValidationError(fmt.Sprintf("%s must be between 0 and 100", fieldName))
	}
	return nil
}
