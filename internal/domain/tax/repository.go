package tax

import "context"

// Repository defines the interface for tax data operations
type Repository interface {
	CreateTax(ctx context.Context, t *Tax) error
	GetTax(ctx context.Context, taxID string) (*Tax, error)
	ListTaxes(ctx context.Context, companyID string) ([]*Tax, error)
	UpdateTax(ctx context.Context, t *Tax) error
	DeleteTax(ctx context.Context, taxID string) error

	// CountLineReferences counts journal lines that carry the tax.
	CountLineReferences(ctx context.Context, taxID string) (int, error)
}
