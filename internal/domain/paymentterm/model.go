package paymentterm

import (
	"fmt"
	"time"
)

// Type decides how the due date is counted
type Type string

const (
	// Net counts days from the invoice date
	Net Type = "net"
	// EndOfMonth counts days from the end of the invoice month
	EndOfMonth Type = "end_of_month"
)

// Valid reports whether t is a known payment term type.
func (t Type) Valid() bool {
	switch t {
	case Net, EndOfMonth:
		return true
	}
	return false
}

// PaymentTerm describes when an invoice falls due
type PaymentTerm struct {
	PaymentTermID string    `json:"paymentTermId"`
	CompanyID     string    `json:"companyId"`
	Name          string    `json:"name"`
	Days          int       `json:"days"`
	Type          Type      `json:"type"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// DueDate returns the due date for an invoice dated on from.
func (p *PaymentTerm) DueDate(from time.Time) time.Time {
	switch p.Type {
	case Net:
		return from.AddDate(0, 0, p.Days)
	case EndOfMonth:
		endOfMonth := time.Date(from.Year(), from.Month()+1, 0, 0, 0, 0, 0, from.Location())
		return endOfMonth.AddDate(0, 0, p.Days)
	default:
		panic(fmt.Sprintf("paymentterm: unhandled type %q", string(p.Type)))
	}
}

// CreatePaymentTermRequest represents the data needed to create a payment term
type CreatePaymentTermRequest struct {
	Name string `json:"name"`
	Days int    `json:"days"`
	Type Type   `json:"type"`
}

// UpdatePaymentTermRequest represents a partial payment term update
type UpdatePaymentTermRequest struct {
	Name   *string `json:"name,omitempty"`
	Days   *int    `json:"days,omitempty"`
	Type   *Type   `json:"type,omitempty"`
	Active *bool   `json:"active,omitempty"`
}
