package tax

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Type is the scope a tax applies to
type Type string

const (
	Sale     Type = "sale"
	Purchase Type = "purchase"
	None     Type = "none"
)

// Valid reports whether t is a known tax type.
func (t Type) Valid() bool {
	switch t {
	case Sale, Purchase, None:
		return true
	}
	return false
}

// ParseType converts s into a Type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown tax type %q", s)
	}
	return t, nil
}

// Tax is a named rate that journal lines can reference
type Tax struct {
	TaxID     string          `json:"taxId"`
	CompanyID string          `json:"companyId"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"` // percent
	Type      Type            `json:"type"`
	AccountID string          `json:"accountId,omitempty"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// CreateTaxRequest represents the data needed to create a tax
type CreateTaxRequest struct {
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
	Type      Type            `json:"type"`
	AccountID string          `json:"accountId,omitempty"`
}

// UpdateTaxRequest represents a partial tax update
type UpdateTaxRequest struct {
	Name      *string          `json:"name,omitempty"`
	Rate      *decimal.Decimal `json:"rate,omitempty"`
	Type      *Type            `json:"type,omitempty"`
	AccountID *string          `json:"accountId,omitempty"`
	Active    *bool            `json:"active,omitempty"`
}
