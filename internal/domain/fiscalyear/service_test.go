package fiscalyear_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/fiscalyear"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/platform/sqlite"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/platform/sqlite/repository"
)

func newService(t *testing.T) *fiscalyear.Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	conn, err := sqlite.Open(filepath.Join(t.TempDir(), "years.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, conn.Migrate(context.Background()))
	return fiscalyear.NewService(repository.NewSQLiteFiscalYearRepository(conn, logger), conn, logger)
}

func create(t *testing.T, svc *fiscalyear.Service, company, start, end string) *fiscalyear.FiscalYear {
	t.Helper()
	fy, err := svc.CreateFiscalYear(context.Background(), company, &fiscalyear.CreateFiscalYearRequest{StartDate: start, EndDate: end})
	require.NoError(t, err)
	return fy
}

func TestCreateFiscalYear(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	t.Run("default name", func(t *testing.T) {
		fy := create(t, svc, "acme", "2024-01-01", "2024-12-31")
		assert.Equal(t, "FY 2024-01-01..2024-12-31", fy.Name)
		assert.Equal(t, fiscalyear.Open, fy.State)
	})

	t.Run("overlap is a conflict", func(t *testing.T) {
		_, err := svc.CreateFiscalYear(ctx, "acme", &fiscalyear.CreateFiscalYearRequest{StartDate: "2024-12-31", EndDate: "2025-12-30"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrConflict))
	})

	t.Run("other company may overlap", func(t *testing.T) {
		create(t, svc, "globex", "2024-06-01", "2025-05-31")
	})

	invalid := []struct {
		name       string
		start, end string
	}{
		{"end before start", "2025-12-31", "2025-01-01"},
		{"bad start", "2025-13-01", "2025-12-31"},
		{"bad end", "2025-01-01", "31.12.2025"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateFiscalYear(ctx, "acme", &fiscalyear.CreateFiscalYearRequest{StartDate: tt.start, EndDate: tt.end})
			assert.True(t, errors.Is(err, errors.ErrValidation), "got %v", err)
		})
	}
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	fy24 := create(t, svc, "acme", "2024-01-01", "2024-12-31")
	fy25 := create(t, svc, "acme", "2025-01-01", "2025-12-31")

	tests := []struct {
		name   string
		date   string
		wantID string
	}{
		{"first day", "2024-01-01", fy24.FiscalYearID},
		{"last day", "2024-12-31", fy24.FiscalYearID},
		{"next year", "2025-07-15", fy25.FiscalYearID},
		{"before any year", "2023-12-31", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fy, ok, err := svc.Resolve(ctx, "acme", tt.date)
			require.NoError(t, err)
			if tt.wantID == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantID, fy.FiscalYearID)
		})
	}

	t.Run("closed years do not resolve", func(t *testing.T) {
		_, err := svc.CloseFiscalYear(ctx, fy24.FiscalYearID, "carol")
		require.NoError(t, err)

		_, ok, err := svc.Resolve(ctx, "acme", "2024-05-05")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("malformed date", func(t *testing.T) {
		_, _, err := svc.Resolve(ctx, "acme", "yesterday")
		assert.True(t, errors.Is(err, errors.ErrValidation))
	})
}

func TestCloseFiscalYear(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	fy := create(t, svc, "acme", "2024-01-01", "2024-12-31")

	// Act
	closed, err := svc.CloseFiscalYear(ctx, fy.FiscalYearID, "carol")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, fiscalyear.Closed, closed.State)
	assert.Equal(t, "carol", closed.ClosedBy)
	require.NotNil(t, closed.ClosedAt)

	stored, err := svc.GetFiscalYear(ctx, fy.FiscalYearID)
	require.NoError(t, err)
	assert.Equal(t, fiscalyear.Closed, stored.State)

	_, err = svc.CloseFiscalYear(ctx, fy.FiscalYearID, "carol")
	assert.True(t, errors.Is(err, errors.ErrStateConflict))

	name := "renamed"
	_, err = svc.UpdateFiscalYear(ctx, fy.FiscalYearID, &fiscalyear.UpdateFiscalYearRequest{Name: &name})
	assert.True(t, errors.Is(err, errors.ErrStateConflict))
}

func TestUpdateAndDeleteFiscalYear(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	fy := create(t, svc, "acme", "2024-01-01", "2024-12-31")
	create(t, svc, "acme", "2025-01-01", "2025-12-31")

	t.Run("shrink", func(t *testing.T) {
		end := "2024-06-30"
		updated, err := svc.UpdateFiscalYear(ctx, fy.FiscalYearID, &fiscalyear.UpdateFiscalYearRequest{EndDate: &end})
		require.NoError(t, err)
		assert.Equal(t, "2024-06-30", updated.EndDate)
	})

	t.Run("grow into the next year", func(t *testing.T) {
		end := "2025-01-15"
		_, err := svc.UpdateFiscalYear(ctx, fy.FiscalYearID, &fiscalyear.UpdateFiscalYearRequest{EndDate: &end})
		assert.True(t, errors.Is(err, errors.ErrConflict))
	})

	t.Run("list is ordered by start date", func(t *testing.T) {
		years, err := svc.ListFiscalYears(ctx, "acme")
		require.NoError(t, err)
		require.Len(t, years, 2)
		assert.Equal(t, "2024-01-01", years[0].StartDate)
	})

	t.Run("delete empty year", func(t *testing.T) {
		require.NoError(t, svc.DeleteFiscalYear(ctx, fy.FiscalYearID))
		_, err := svc.GetFiscalYear(ctx, fy.FiscalYearID)
		assert.True(t, errors.Is(err, errors.ErrNotFound))
	})
}
