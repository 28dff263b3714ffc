package fiscalyear

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

// Service is the fiscal-year calendar of every company
type Service struct {
	repo   Repository
	tx     uow.Transactor
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new fiscal year service
func NewService(repo Repository, tx uow.Transactor, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		tx:     tx,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateFiscalYear opens a new fiscal year for the company
func (s *Service) CreateFiscalYear(ctx context.Context, companyID string, req *CreateFiscalYearRequest) (*FiscalYear, error) {
	if err := utils.ValidateRequiredString(companyID, "company ID"); err != nil {
		return nil, err
	}
	if err := validateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = fmt.Sprintf("FY %s..%s", req.StartDate, req.EndDate)
	}

	now := s.now()
	fy := &FiscalYear{
		FiscalYearID: uuid.New().String(),
		CompanyID:    companyID,
		Name:         name,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		State:        Open,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.checkOverlap(ctx, fy); err != nil {
			return err
		}
		return s.repo.CreateFiscalYear(ctx, fy)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("fiscal year created", "companyId", companyID, "fiscalYearId", fy.FiscalYearID,
		"startDate", fy.StartDate, "endDate", fy.EndDate)
	return fy, nil
}

// GetFiscalYear retrieves a fiscal year by ID
func (s *Service) GetFiscalYear(ctx context.Context, fiscalYearID string) (*FiscalYear, error) {
	var fy *FiscalYear
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		fy, err = s.repo.GetFiscalYear(ctx, fiscalYearID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return fy, nil
}

// ListFiscalYears returns the company's years ordered by start date
func (s *Service) ListFiscalYears(ctx context.Context, companyID string) ([]*FiscalYear, error) {
	var years []*FiscalYear
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		years, err = s.repo.ListFiscalYears(ctx, companyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if years == nil {
		years = []*FiscalYear{}
	}
	return years, nil
}

// UpdateFiscalYear renames or resizes an open fiscal year. The new range must
// not overlap another year and must still cover every entry of the year.
func (s *Service) UpdateFiscalYear(ctx context.Context, fiscalYearID string, req *UpdateFiscalYearRequest) (*FiscalYear, error) {
	var fy *FiscalYear
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		fy, err = s.repo.GetFiscalYear(ctx, fiscalYearID)
		if err != nil {
			return err
		}
		if !fy.IsOpen() {
			return errors.NewStateConflictError("fiscal year is closed")
		}

		if req.Name != nil {
			if err := utils.ValidateRequiredString(*req.Name, "fiscal year name"); err != nil {
				return err
			}
			fy.Name = strings.TrimSpace(*req.Name)
		}

		if req.StartDate != nil || req.EndDate != nil {
			start, end := fy.StartDate, fy.EndDate
			if req.StartDate != nil {
				start = *req.StartDate
			}
			if req.EndDate != nil {
				end = *req.EndDate
			}
			if err := validateRange(start, end); err != nil {
				return err
			}

			first, last, err := s.repo.EntryDateRange(ctx, fy.FiscalYearID)
			if err != nil {
				return err
			}
			if first != "" && (first < start || last > end) {
				return errors.NewConflictError(fmt.Sprintf("fiscal year has entries dated %s..%s outside the new range", first, last))
			}

			fy.StartDate, fy.EndDate = start, end
			if err := s.checkOverlap(ctx, fy); err != nil {
				return err
			}
		}

		fy.UpdatedAt = s.now()
		return s.repo.UpdateFiscalYear(ctx, fy)
	})
	if err != nil {
		return nil, err
	}
	return fy, nil
}

// DeleteFiscalYear removes a fiscal year that has no entries
func (s *Service) DeleteFiscalYear(ctx context.Context, fiscalYearID string) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetFiscalYear(ctx, fiscalYearID); err != nil {
			return err
		}
		count, err := s.repo.CountEntries(ctx, fiscalYearID)
		if err != nil {
			return err
		}
		if count > 0 {
			return errors.NewConflictError(fmt.Sprintf("fiscal year has %d journal entries", count))
		}
		return s.repo.DeleteFiscalYear(ctx, fiscalYearID)
	})
}

// CloseFiscalYear moves an open year to closed. Drafts left in the year are
// frozen from then on; there is no way back to open.
func (s *Service) CloseFiscalYear(ctx context.Context, fiscalYearID string, actorID string) (*FiscalYear, error) {
	var fy *FiscalYear
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		fy, err = s.repo.GetFiscalYear(ctx, fiscalYearID)
		if err != nil {
			return err
		}
		if !fy.IsOpen() {
			return errors.NewStateConflictError("fiscal year is already closed")
		}

		now := s.now()
		fy.State = Closed
		fy.ClosedAt = &now
		fy.ClosedBy = actorID
		fy.UpdatedAt = now
		return s.repo.UpdateFiscalYear(ctx, fy)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("fiscal year closed", "fiscalYearId", fiscalYearID, "actorId", actorID)
	return fy, nil
}

// Resolve returns the open fiscal year of the company containing date.
// The boolean is false when the date is outside every open year.
func (s *Service) Resolve(ctx context.Context, companyID string, date string) (*FiscalYear, bool, error) {
	if err := utils.ValidateISODate(date); err != nil {
		return nil, false, err
	}

	var fy *FiscalYear
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		fy, err = s.repo.FindContaining(ctx, companyID, date)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	if fy == nil || !fy.IsOpen() {
		return nil, false, nil
	}
	return fy, true, nil
}

func (s *Service) checkOverlap(ctx context.Context, fy *FiscalYear) error {
	years, err := s.repo.ListFiscalYears(ctx, fy.CompanyID)
	if err != nil {
		return err
	}
	for _, other := range years {
		if other.FiscalYearID == fy.FiscalYearID {
			continue
		}
		if other.Overlaps(fy.StartDate, fy.EndDate) {
			return errors.NewConflictError(fmt.Sprintf("fiscal year overlaps %s (%s..%s)", other.Name, other.StartDate, other.EndDate)).
				WithDetail("fiscalYearId", other.FiscalYearID)
		}
	}
	return nil
}

func validateRange(start, end string) error {
	if err := utils.ValidateISODate(start); err != nil {
		return errors.NewValidationError("start date: " + err.(errors.AppError).Message)
	}
	if err := utils.ValidateISODate(end); err != nil {
		return errors.NewValidationError("end date: " + err.(errors.AppError).Message)
	}
	if end < start {
		return errors.NewValidationError("fiscal year end date is before its start date")
	}
	return nil
}
