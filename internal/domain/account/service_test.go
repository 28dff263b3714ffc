package account_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/account"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/platform/sqlite"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/platform/sqlite/repository"
)

func newService(t *testing.T) *account.Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	conn, err := sqlite.Open(filepath.Join(t.TempDir(), "accounts.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, conn.Migrate(context.Background()))
	return account.NewService(repository.NewSQLiteAccountRepository(conn, logger), conn, logger)
}

func TestCreateAccount(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	t.Run("creates an active account", func(t *testing.T) {
		// Act
		acc, err := svc.CreateAccount(ctx, "acme", &account.CreateAccountRequest{
			Code: " 1000 ", Name: "Cash", AccountType: account.Asset,
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "1000", acc.Code)
		assert.True(t, acc.Active)
		assert.NotEmpty(t, acc.AccountID)
	})

	t.Run("duplicate code in the same company", func(t *testing.T) {
		_, err := svc.CreateAccount(ctx, "acme", &account.CreateAccountRequest{
			Code: "1000", Name: "Petty cash", AccountType: account.Asset,
		})
		assert.True(t, errors.Is(err, errors.ErrConflict))
	})

	t.Run("same code in another company", func(t *testing.T) {
		_, err := svc.CreateAccount(ctx, "globex", &account.CreateAccountRequest{
			Code: "1000", Name: "Cash", AccountType: account.Asset,
		})
		assert.NoError(t, err)
	})

	invalid := []struct {
		name string
		req  *account.CreateAccountRequest
	}{
		{"bad code", &account.CreateAccountRequest{Code: "10 00", Name: "x", AccountType: account.Asset}},
		{"empty name", &account.CreateAccountRequest{Code: "1001", Name: "  ", AccountType: account.Asset}},
		{"unknown type", &account.CreateAccountRequest{Code: "1002", Name: "x", AccountType: "income"}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateAccount(ctx, "acme", tt.req)
			assert.True(t, errors.Is(err, errors.ErrValidation), "got %v", err)
		})
	}

	t.Run("parent from another company", func(t *testing.T) {
		other, err := svc.CreateAccount(ctx, "globex", &account.CreateAccountRequest{
			Code: "2000", Name: "Payables", AccountType: account.Liability,
		})
		require.NoError(t, err)

		_, err = svc.CreateAccount(ctx, "acme", &account.CreateAccountRequest{
			Code: "2010", Name: "Trade payables", AccountType: account.Liability, ParentID: other.AccountID,
		})
		assert.True(t, errors.Is(err, errors.ErrNotFound))
	})
}

func TestUpdateAccount(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	root, err := svc.CreateAccount(ctx, "acme", &account.CreateAccountRequest{Code: "1000", Name: "Assets", AccountType: account.Asset})
	require.NoError(t, err)
	child, err := svc.CreateAccount(ctx, "acme", &account.CreateAccountRequest{Code: "1010", Name: "Cash", AccountType: account.Asset, ParentID: root.AccountID})
	require.NoError(t, err)
	grandchild, err := svc.CreateAccount(ctx, "acme", &account.CreateAccountRequest{Code: "1011", Name: "Till", AccountType: account.Asset, ParentID: child.AccountID})
	require.NoError(t, err)

	t.Run("rename and deactivate", func(t *testing.T) {
		name, active := "Cash on hand", false
		updated, err := svc.UpdateAccount(ctx, child.AccountID, &account.UpdateAccountRequest{Name: &name, Active: &active})
		require.NoError(t, err)
		assert.Equal(t, "Cash on hand", updated.Name)
		assert.False(t, updated.Active)
	})

	t.Run("self parent", func(t *testing.T) {
		_, err := svc.UpdateAccount(ctx, root.AccountID, &account.UpdateAccountRequest{ParentID: &root.AccountID})
		assert.True(t, errors.Is(err, errors.ErrValidation))
	})

	t.Run("cycle through descendants", func(t *testing.T) {
		_, err := svc.UpdateAccount(ctx, root.AccountID, &account.UpdateAccountRequest{ParentID: &grandchild.AccountID})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrValidation))
		assert.Contains(t, err.Error(), "cycle")
	})

	t.Run("detach from parent", func(t *testing.T) {
		empty := ""
		updated, err := svc.UpdateAccount(ctx, grandchild.AccountID, &account.UpdateAccountRequest{ParentID: &empty})
		require.NoError(t, err)
		assert.Empty(t, updated.ParentID)
	})

	t.Run("unknown account", func(t *testing.T) {
		name := "x"
		_, err := svc.UpdateAccount(ctx, "missing", &account.UpdateAccountRequest{Name: &name})
		assert.True(t, errors.Is(err, errors.ErrNotFound))
	})
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	parent, err := svc.CreateAccount(ctx, "acme", &account.CreateAccountRequest{Code: "6000", Name: "Opex", AccountType: account.Expense})
	require.NoError(t, err)
	child, err := svc.CreateAccount(ctx, "acme", &account.CreateAccountRequest{Code: "6100", Name: "Rent", AccountType: account.Expense, ParentID: parent.AccountID})
	require.NoError(t, err)

	// Act & Assert
	err = svc.DeleteAccount(ctx, parent.AccountID)
	assert.True(t, errors.Is(err, errors.ErrConflict))

	require.NoError(t, svc.DeleteAccount(ctx, child.AccountID))
	require.NoError(t, svc.DeleteAccount(ctx, parent.AccountID))

	_, err = svc.GetAccount(ctx, parent.AccountID)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestListAccountsAndHierarchy(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	// Setup
	created, err := svc.SeedAccounts(ctx, "acme", account.DefaultChart())
	require.NoError(t, err)
	require.Equal(t, len(account.DefaultChart().Accounts), created)

	t.Run("seeding again creates nothing", func(t *testing.T) {
		again, err := svc.SeedAccounts(ctx, "acme", account.DefaultChart())
		require.NoError(t, err)
		assert.Zero(t, again)
	})

	t.Run("filter by type", func(t *testing.T) {
		resp, err := svc.ListAccounts(ctx, "acme", account.AccountFilter{AccountType: account.Expense})
		require.NoError(t, err)
		assert.Equal(t, 4, resp.TotalCount)
		for _, a := range resp.Accounts {
			assert.Equal(t, account.Expense, a.AccountType)
		}
	})

	t.Run("paging", func(t *testing.T) {
		resp, err := svc.ListAccounts(ctx, "acme", account.AccountFilter{Skip: 2, Limit: 3})
		require.NoError(t, err)
		assert.Len(t, resp.Accounts, 3)
		assert.Equal(t, created, resp.TotalCount)
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := svc.ListAccounts(ctx, "acme", account.AccountFilter{AccountType: "cash"})
		assert.True(t, errors.Is(err, errors.ErrValidation))
	})

	t.Run("hierarchy", func(t *testing.T) {
		roots, err := svc.Hierarchy(ctx, "acme")
		require.NoError(t, err)

		byCode := make(map[string]*account.AccountNode)
		for _, r := range roots {
			byCode[r.Code] = r
		}
		require.Contains(t, byCode, "1000")
		assert.Len(t, byCode["1000"].Children, 3)
		assert.NotContains(t, byCode, "1010")
	})

	t.Run("other company is empty", func(t *testing.T) {
		resp, err := svc.ListAccounts(ctx, "globex", account.AccountFilter{})
		require.NoError(t, err)
		assert.Empty(t, resp.Accounts)
	})
}

func TestParseChart(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "valid",
			yaml: "accounts:\n  - {code: \"1\", name: A, type: asset}\n  - {code: \"2\", name: B, type: asset, parent: \"1\"}\n",
		},
		{
			name:    "parent after child",
			yaml:    "accounts:\n  - {code: \"2\", name: B, type: asset, parent: \"1\"}\n  - {code: \"1\", name: A, type: asset}\n",
			wantErr: "before it is defined",
		},
		{
			name:    "duplicate",
			yaml:    "accounts:\n  - {code: \"1\", name: A, type: asset}\n  - {code: \"1\", name: B, type: asset}\n",
			wantErr: "defined twice",
		},
		{
			name:    "bad type",
			yaml:    "accounts:\n  - {code: \"1\", name: A, type: cash}\n",
			wantErr: "invalid type",
		},
		{
			name:    "unknown field",
			yaml:    "accounts:\n  - {code: \"1\", name: A, type: asset, colour: red}\n",
			wantErr: "failed to parse",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chart, err := account.ParseChart(strings.NewReader(tt.yaml))
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Len(t, chart.Accounts, 2)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAccountTypePresent(t *testing.T) {
	net := account.Asset.Present(decimalOf(t, "-5"))
	assert.Equal(t, "-5", net.String())
	assert.Equal(t, "5", account.Liability.Present(decimalOf(t, "-5")).String())
	assert.Equal(t, "5", account.Revenue.Present(decimalOf(t, "-5")).String())
}

func decimalOf(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
