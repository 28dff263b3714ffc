package tax

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/common/utils"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/account"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/uow"
)

// AccountLookup resolves the account a tax posts to
type AccountLookup interface {
	GetAccount(ctx context.Context, accountID string) (*account.Account, error)
}

// Service provides tax-related business logic
type Service struct {
	repo     Repository
	accounts AccountLookup
	tx       uow.Transactor
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new tax service
func NewService(repo Repository, accounts AccountLookup, tx uow.Transactor, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		tx:       tx,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateTax creates a new tax
func (s *Service) CreateTax(ctx context.Context, companyID string, req *CreateTaxRequest) (*Tax, error) {
	if err := utils.ValidateRequiredString(companyID, "company ID"); err != nil {
		return nil, err
	}
	if err := utils.ValidateRequiredString(req.Name, "tax name"); err != nil {
		return nil, err
	}
	if err := utils.ValidatePercentage(req.Rate, "tax rate"); err != nil {
		return nil, err
	}
	taxType := req.Type
	if taxType == "" {
		taxType = None
	}
	if !taxType.Valid() {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid tax type %q", req.Type))
	}

	now := s.now()
	t := &Tax{
		TaxID:     uuid.New().String(),
		CompanyID: companyID,
		Name:      strings.TrimSpace(req.Name),
		Rate:      req.Rate,
		Type:      taxType,
		AccountID: req.AccountID,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.checkAccount(ctx, companyID, t.AccountID); err != nil {
			return err
		}
		return s.repo.CreateTax(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("tax created", "companyId", companyID, "taxId", t.TaxID, "rate", t.Rate.String())
	return t, nil
}

// GetTax retrieves a tax by ID
func (s *Service) GetTax(ctx context.Context, taxID string) (*Tax, error) {
	var t *Tax
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		t, err = s.repo.GetTax(ctx, taxID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTaxes lists the taxes of a company
func (s *Service) ListTaxes(ctx context.Context, companyID string) ([]*Tax, error) {
	var taxes []*Tax
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		taxes, err = s.repo.ListTaxes(ctx, companyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if taxes == nil {
		taxes = []*Tax{}
	}
	return taxes, nil
}

// UpdateTax updates an existing tax
func (s *Service) UpdateTax(ctx context.Context, taxID string, req *UpdateTaxRequest) (*Tax, error) {
	var t *Tax
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		t, err = s.repo.GetTax(ctx, taxID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			if err := utils.ValidateRequiredString(*req.Name, "tax name"); err != nil {
				return err
			}
			t.Name = strings.TrimSpace(*req.Name)
		}
		if req.Rate != nil {
			if err := utils.ValidatePercentage(*req.Rate, "tax rate"); err != nil {
				return err
			}
			t.Rate = *req.Rate
		}
		if req.Type != nil {
			if !req.Type.Valid() {
				return errors.NewValidationError(fmt.Sprintf("invalid tax type %q", *req.Type))
			}
			t.Type = *req.Type
		}
		if req.AccountID != nil {
			if err := s.checkAccount(ctx, t.CompanyID, *req.AccountID); err != nil {
				return err
			}
			t.AccountID = *req.AccountID
		}
		if req.Active != nil {
			t.Active = *req.Active
		}

		t.UpdatedAt = s.now()
		return s.repo.UpdateTax(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTax deletes a tax
func (s *Service) DeleteTax(ctx context.Context, taxID string) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetTax(ctx, taxID); err != nil {
			return err
		}
		refs, err := s.repo.CountLineReferences(ctx, taxID)
		if err != nil {
			return err
		}
		if refs > 0 {
			return errors.NewConflictError(fmt.Sprintf("tax is referenced by %d journal lines, deactivate it instead", refs))
		}
		return s.repo.DeleteTax(ctx, taxID)
	})
}

func (s *Service) checkAccount(ctx context.Context, companyID, accountID string) error {
	if accountID == "" {
		return nil
	}
	acc, err := s.accounts.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}
	if acc.CompanyID != companyID {
		return errors.NewNotFoundError("tax account not found")
	}
	return nil
}
