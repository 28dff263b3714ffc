package paymentterm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/common/utils"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/uow"
)

// Service provides payment term business logic
type Service struct {
	repo   Repository
	tx     uow.Transactor
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new payment term service
func NewService(repo Repository, tx uow.Transactor, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		tx:     tx,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func validateDays(days int) error {
	if days < 0 {
		return errors.NewValidationError("payment term days must not be negative")
	}
	return nil
}

// CreatePaymentTerm creates a new payment term
func (s *Service) CreatePaymentTerm(ctx context.Context, companyID string, req *CreatePaymentTermRequest) (*PaymentTerm, error) {
	if err := utils.ValidateRequiredString(companyID, "company ID"); err != nil {
		return nil, err
	}
	if err := utils.ValidateRequiredString(req.Name, "payment term name"); err != nil {
		return nil, err
	}
	if err := validateDays(req.Days); err != nil {
		return nil, err
	}
	termType := req.Type
	if termType == "" {
		termType = Net
	}
	if !termType.Valid() {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid payment term type %q", req.Type))
	}

	now := s.now()
	p := &PaymentTerm{
		PaymentTermID: uuid.New().String(),
		CompanyID:     companyID,
		Name:          strings.TrimSpace(req.Name),
		Days:          req.Days,
		Type:          termType,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.repo.CreatePaymentTerm(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment term created", "companyId", companyID, "paymentTermId", p.PaymentTermID)
	return p, nil
}

// GetPaymentTerm retrieves a payment term by ID
func (s *Service) GetPaymentTerm(ctx context.Context, paymentTermID string) (*PaymentTerm, error) {
	var p *PaymentTerm
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.repo.GetPaymentTerm(ctx, paymentTermID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListPaymentTerms lists the payment terms of a company
func (s *Service) ListPaymentTerms(ctx context.Context, companyID string) ([]*PaymentTerm, error) {
	var terms []*PaymentTerm
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		terms, err = s.repo.ListPaymentTerms(ctx, companyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if terms == nil {
		terms = []*PaymentTerm{}
	}
	return terms, nil
}

// UpdatePaymentTerm updates an existing payment term
func (s *Service) UpdatePaymentTerm(ctx context.Context, paymentTermID string, req *UpdatePaymentTermRequest) (*PaymentTerm, error) {
	var p *PaymentTerm
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.repo.GetPaymentTerm(ctx, paymentTermID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			if err := utils.ValidateRequiredString(*req.Name, "payment term name"); err != nil {
				return err
			}
			p.Name = strings.TrimSpace(*req.Name)
		}
		if req.Days != nil {
			if err := validateDays(*req.Days); err != nil {
				return err
			}
			p.Days = *req.Days
		}
		if req.Type != nil {
			if !req.Type.Valid() {
				return errors.NewValidationError(fmt.Sprintf("invalid payment term type %q", *req.Type))
			}
			p.Type = *req.Type
		}
		if req.Active != nil {
			p.Active = *req.Active
		}

		p.UpdatedAt = s.now()
		return s.repo.UpdatePaymentTerm(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePaymentTerm deletes a payment term
func (s *Service) DeletePaymentTerm(ctx context.Context, paymentTermID string) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetPaymentTerm(ctx, paymentTermID); err != nil {
			return err
		}
		return s.repo.DeletePaymentTerm(ctx, paymentTermID)
	})
}
