package account

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

// Service provides account-related business logic
type Service struct {
	repo   Repository
	tx     uow.Transactor
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new account service
func NewService(repo Repository, tx uow.Transactor, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		tx:     tx,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateAccount creates a new account
func (s *Service) CreateAccount(ctx context.Context, companyID string, req *CreateAccountRequest) (*Account, error) {
	if err := utils.ValidateRequiredString(companyID, "company ID"); err != nil {
		return nil, err
	}
	if err := utils.ValidateAccountCode(req.Code); err != nil {
		return nil, err
	}
	if err := utils.ValidateRequiredString(req.Name, "account name"); err != nil {
		return nil, err
	}
	if !req.AccountType.Valid() {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid account type %q", req.AccountType))
	}

	now := s.now()
	account := &Account{
		AccountID:   uuid.New().String(),
		CompanyID:   companyID,
		Code:        strings.TrimSpace(req.Code),
		Name:        strings.TrimSpace(req.Name),
		AccountType: req.AccountType,
		ParentID:    req.ParentID,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.repo.AccountCodeExists(ctx, companyID, account.Code)
		if err != nil {
			return err
		}
		if exists {
			return errors.NewConflictError(fmt.Sprintf("account with code %s already exists", account.Code))
		}

		if account.ParentID != "" {
			parent, err := s.repo.GetAccount(ctx, account.ParentID)
			if err != nil {
				return err
			}
			if parent.CompanyID != companyID {
				return errors.NewNotFoundError("parent account not found")
			}
		}

		return s.repo.CreateAccount(ctx, account)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("account created", "companyId", companyID, "accountId", account.AccountID, "code", account.Code)
	return account, nil
}

// GetAccount retrieves an account by ID
func (s *Service) GetAccount(ctx context.Context, accountID string) (*Account, error) {
	var account *Account
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		account, err = s.repo.GetAccount(ctx, accountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves accounts based on criteria
func (s *Service) ListAccounts(ctx context.Context, companyID string, filter AccountFilter) (*AccountListResponse, error) {
	if filter.AccountType != "" && !filter.AccountType.Valid() {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid account type %q", filter.AccountType))
	}
	filter = filter.Normalize()

	response := &AccountListResponse{}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		accounts, total, err := s.repo.ListAccounts(ctx, companyID, filter)
		if err != nil {
			return err
		}
		response.Accounts = accounts
		response.TotalCount = total
		return nil
	})
	if err != nil {
		return nil, err
	}
	if response.Accounts == nil {
		response.Accounts = []*Account{}
	}
	return response, nil
}

// UpdateAccount updates an existing account
func (s *Service) UpdateAccount(ctx context.Context, accountID string, req *UpdateAccountRequest) (*Account, error) {
	var account *Account
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		account, err = s.repo.GetAccount(ctx, accountID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			if err := utils.ValidateRequiredString(*req.Name, "account name"); err != nil {
				return err
			}
			account.Name = strings.TrimSpace(*req.Name)
		}

		if req.ParentID != nil && *req.ParentID != account.ParentID {
			if err := s.checkParent(ctx, account, *req.ParentID); err != nil {
				return err
			}
			account.ParentID = *req.ParentID
		}

		if req.Active != nil {
			account.Active = *req.Active
		}

		account.UpdatedAt = s.now()
		return s.repo.UpdateAccount(ctx, account)
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// checkParent rejects a parent outside the company or one that would close
// a cycle, i.e. the account itself or any of its descendants.
func (s *Service) checkParent(ctx context.Context, account *Account, parentID string) error {
	if parentID == "" {
		return nil
	}
	if parentID == account.AccountID {
		return errors.NewValidationError("account cannot be its own parent")
	}

	parent, err := s.repo.GetAccount(ctx, parentID)
	if err != nil {
		return err
	}
	if parent.CompanyID != account.CompanyID {
		return errors.NewNotFoundError("parent account not found")
	}

	// Walk up from the new parent; reaching the account means the parent is
	// one of its descendants.
	visited := make(map[string]bool)
	for current := parent; current.ParentID != "" && !visited[current.AccountID]; {
		visited[current.AccountID] = true
		if current.ParentID == account.AccountID {
			return errors.NewValidationError("parent account is a descendant of the account, hierarchy would contain a cycle")
		}
		next, err := s.repo.GetAccount(ctx, current.ParentID)
		if err != nil {
			return err
		}
		current = next
	}
	return nil
}

// DeleteAccount deletes an account that nothing references
func (s *Service) DeleteAccount(ctx context.Context, accountID string) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetAccount(ctx, accountID); err != nil {
			return err
		}

		refs, err := s.repo.CountLineReferences(ctx, accountID)
		if err != nil {
			return err
		}
		if refs > 0 {
			return errors.NewConflictError(fmt.Sprintf("account is referenced by %d journal lines, deactivate it instead", refs)).
				WithDetail("references", refs)
		}

		children, err := s.repo.CountChildren(ctx, accountID)
		if err != nil {
			return err
		}
		if children > 0 {
			return errors.NewConflictError("account has child accounts")
		}

		return s.repo.DeleteAccount(ctx, accountID)
	})
}

// GetPosition returns the running posted net of an account.
func (s *Service) GetPosition(ctx context.Context, accountID string) (*Position, error) {
	var position *Position
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetAccount(ctx, accountID); err != nil {
			return err
		}
		var err error
		position, err = s.repo.GetPosition(ctx, accountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return position, nil
}

// Hierarchy gets the hierarchical structure of accounts
func (s *Service) Hierarchy(ctx context.Context, companyID string) ([]*AccountNode, error) {
	var accounts []*Account
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		accounts, err = s.repo.AllAccounts(ctx, companyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return BuildHierarchy(accounts), nil
}

// BuildHierarchy arranges accounts into trees. Accounts whose parent is not in
// the slice become roots.
func BuildHierarchy(accounts []*Account) []*AccountNode {
	nodes := make(map[string]*AccountNode, len(accounts))
	for _, acc := range accounts {
		nodes[acc.AccountID] = &AccountNode{Account: acc}
	}

	roots := make([]*AccountNode, 0)
	for _, acc := range accounts {
		node := nodes[acc.AccountID]
		if parent, ok := nodes[acc.ParentID]; ok && acc.ParentID != "" {
			parent.Children = append(parent.Children, node)
			continue
		}
		roots = append(roots, node)
	}
	return roots
}
