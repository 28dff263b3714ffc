package paymentterm

import "context"

// Repository defines the interface for payment term data operations
type Repository interface {
	CreatePaymentTerm(ctx context.Context, p *PaymentTerm) error
	GetPaymentTerm(ctx context.Context, paymentTermID string) (*PaymentTerm, error)
	ListPaymentTerms(ctx context.Context, companyID string) ([]*PaymentTerm, error)
	UpdatePaymentTerm(ctx context.Context, p *PaymentTerm) error
	DeletePaymentTerm(ctx context.Context, paymentTermID string) error
}
