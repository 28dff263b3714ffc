package bankstatement

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

// AccountLookup resolves the ledger account a statement belongs to
type AccountLookup interface {
	GetAccount(ctx context.Context, accountID string) (*account.Account, error)
}

// Service provides bank statement business logic
type Service struct {
	repo     Repository
	accounts AccountLookup
	tx       uow.Transactor
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new bank statement service
func NewService(repo Repository, accounts AccountLookup, tx uow.Transactor, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		tx:       tx,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateBankStatement imports a statement and its lines
func (s *Service) CreateBankStatement(ctx context.Context, companyID string, req *CreateBankStatementRequest) (*BankStatement, error) {
	if err := utils.ValidateRequiredString(companyID, "company ID"); err != nil {
		return nil, err
	}
	if err := utils.ValidateRequiredString(req.BankAccountID, "bank account"); err != nil {
		return nil, err
	}
	if err := utils.ValidateISODate(req.StatementDate); err != nil {
		return nil, err
	}
	if err := validateLines(req.Lines); err != nil {
		return nil, err
	}

	now := s.now()
	b := &BankStatement{
		BankStatementID: uuid.New().String(),
		CompanyID:       companyID,
		BankAccountID:   req.BankAccountID,
		StatementDate:   req.StatementDate,
		Reference:       strings.TrimSpace(req.Reference),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	b.Lines = buildLines(b.BankStatementID, req.Lines)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		acc, err := s.accounts.GetAccount(ctx, req.BankAccountID)
		if err != nil {
			return err
		}
		if acc.CompanyID != companyID {
			return errors.NewNotFoundError("bank account not found")
		}
		if acc.AccountType != account.Asset {
			return errors.NewValidationError(fmt.Sprintf("bank account %s must be an asset account", acc.Code))
		}
		return s.repo.CreateBankStatement(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bank statement imported", "companyId", companyID, "bankStatementId", b.BankStatementID,
		"lines", len(b.Lines), "balance", b.Balance().String())
	return b, nil
}

// GetBankStatement retrieves a statement with its lines
func (s *Service) GetBankStatement(ctx context.Context, bankStatementID string) (*BankStatement, error) {
	var b *BankStatement
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		b, err = s.repo.GetBankStatement(ctx, bankStatementID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListBankStatements lists the statements of a company
func (s *Service) ListBankStatements(ctx context.Context, companyID string) ([]*BankStatement, error) {
	var statements []*BankStatement
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		statements, err = s.repo.ListBankStatements(ctx, companyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if statements == nil {
		statements = []*BankStatement{}
	}
	return statements, nil
}

// UpdateBankStatement updates a statement
func (s *Service) UpdateBankStatement(ctx context.Context, bankStatementID string, req *UpdateBankStatementRequest) (*BankStatement, error) {
	if req.StatementDate != nil {
		if err := utils.ValidateISODate(*req.StatementDate); err != nil {
			return nil, err
		}
	}
	if req.Lines != nil {
		if err := validateLines(*req.Lines); err != nil {
			return nil, err
		}
	}

	var b *BankStatement
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		b, err = s.repo.GetBankStatement(ctx, bankStatementID)
		if err != nil {
			return err
		}
		if req.StatementDate != nil {
			b.StatementDate = *req.StatementDate
		}
		if req.Reference != nil {
			b.Reference = strings.TrimSpace(*req.Reference)
		}
		if req.Lines != nil {
			b.Lines = buildLines(b.BankStatementID, *req.Lines)
			if err := s.repo.ReplaceLines(ctx, b.BankStatementID, b.Lines); err != nil {
				return err
			}
		}
		b.UpdatedAt = s.now()
		return s.repo.UpdateBankStatement(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBankStatement deletes a statement and its lines
func (s *Service) DeleteBankStatement(ctx context.Context, bankStatementID string) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetBankStatement(ctx, bankStatementID); err != nil {
			return err
		}
		if err := s.repo.ReplaceLines(ctx, bankStatementID, nil); err != nil {
			return err
		}
		return s.repo.DeleteBankStatement(ctx, bankStatementID)
	})
}

func validateLines(lines []LineInput) error {
	for i, line := range lines {
		if err := utils.ValidateISODate(line.Date); err != nil {
			return errors.NewValidationError(fmt.Sprintf("line %d: invalid date %q", i+1, line.Date))
		}
		if line.Amount.IsZero() {
			return errors.NewValidationError(fmt.Sprintf("line %d: amount must not be zero", i+1))
		}
	}
	return nil
}

func buildLines(bankStatementID string, inputs []LineInput) []Line {
	lines := make([]Line, 0, len(inputs))
	for _, in := range inputs {
		lines = append(lines, Line{
			LineID:          uuid.New().String(),
			BankStatementID: bankStatementID,
			Date:            in.Date,
			Description:     strings.TrimSpace(in.Description),
			Amount:          in.Amount,
			Reference:       strings.TrimSpace(in.Reference),
		})
	}
	return lines
}
