package server_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/api/server"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/app"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/platform/sqlite"
)

type envelope struct {
	Success          bool            `json:"success"`
	Data             json.RawMessage `json:"data"`
	Error            string          `json:"error"`
	ErrorDescription struct {
		Message string `json:"message"`
	} `json:"error_description"`
	Pagination *struct {
		Total int `json:"total"`
	} `json:"pagination"`
}

type client struct {
	t   *testing.T
	srv *httptest.Server
}

func newClient(t *testing.T) *client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	conn, err := sqlite.Open(filepath.Join(t.TempDir(), "api.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, conn.Migrate(context.Background()))

	a := app.New(conn, app.Options{ReconcileWindowDays: 3}, logger)
	srv := httptest.NewServer(server.NewHandler(a.Handler(false), logger))
	t.Cleanup(srv.Close)
	return &client{t: t, srv: srv}
}

func (c *client) do(method, path, company, actor, body string) (int, envelope) {
	c.t.Helper()
	req, err := http.NewRequest(method, c.srv.URL+path, strings.NewReader(body))
	require.NoError(c.t, err)
	if company != "" {
		req.Header.Set("X-Company-Id", company)
	}
	if actor != "" {
		req.Header.Set(server.ActorHeader, actor)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	if len(raw) > 0 {
		require.NoError(c.t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func (c *client) id(env envelope, field string) string {
	c.t.Helper()
	var m map[string]interface{}
	require.NoError(c.t, json.Unmarshal(env.Data, &m))
	id, _ := m[field].(string)
	require.NotEmpty(c.t, id)
	return id
}

func TestLedgerOverHTTP(t *testing.T) {
	c := newClient(t)

	// Setup
	status, _ := c.do(http.MethodPost, "/fiscal-years", "acme", "alice", `{"name":"FY2024","startDate":"2024-01-01","endDate":"2024-12-31"}`)
	require.Equal(t, http.StatusCreated, status)

	status, env := c.do(http.MethodPost, "/chart-of-accounts", "acme", "alice", `{"code":"1000","name":"Cash","accountType":"asset"}`)
	require.Equal(t, http.StatusCreated, status)
	cash := c.id(env, "accountId")
	status, env = c.do(http.MethodPost, "/chart-of-accounts", "acme", "alice", `{"code":"4000","name":"Revenue","accountType":"revenue"}`)
	require.Equal(t, http.StatusCreated, status)
	revenue := c.id(env, "accountId")

	t.Run("unbalanced entry is a 400", func(t *testing.T) {
		status, env := c.do(http.MethodPost, "/journal-entries", "acme", "alice",
			`{"date":"2024-03-15","lines":[{"accountId":"`+cash+`","debit":"100"},{"accountId":"`+revenue+`","credit":"90"}]}`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "VALIDATION_ERROR", env.Error)
		assert.Contains(t, env.ErrorDescription.Message, "not balanced")
	})

	var entryID string
	t.Run("create and post", func(t *testing.T) {
		status, env := c.do(http.MethodPost, "/journal-entries", "acme", "alice",
			`{"date":"2024-03-15","reference":"INV-1","lines":[{"accountId":"`+cash+`","debit":100},{"accountId":"`+revenue+`","credit":"100"}]}`)
		require.Equal(t, http.StatusCreated, status)
		entryID = c.id(env, "journalEntryId")

		status, env = c.do(http.MethodPost, "/journal-entries/"+entryID+"/post", "acme", "bob", "")
		require.Equal(t, http.StatusOK, status)
		var posted map[string]interface{}
		require.NoError(t, json.Unmarshal(env.Data, &posted))
		assert.Equal(t, "posted", posted["state"])
		assert.Equal(t, "bob", posted["postedBy"])
	})

	t.Run("posting twice is a 409", func(t *testing.T) {
		status, env := c.do(http.MethodPost, "/journal-entries/"+entryID+"/post", "acme", "bob", "")
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "STATE_CONFLICT", env.Error)
	})

	t.Run("posting needs an actor", func(t *testing.T) {
		status, _ := c.do(http.MethodPost, "/journal-entries/"+entryID+"/post", "acme", "", "")
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("posted entry cannot be deleted", func(t *testing.T) {
		status, _ := c.do(http.MethodDelete, "/journal-entries/"+entryID, "acme", "alice", "")
		assert.Equal(t, http.StatusConflict, status)
	})

	t.Run("other company sees nothing", func(t *testing.T) {
		status, _ := c.do(http.MethodGet, "/journal-entries/"+entryID, "globex", "mallory", "")
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("balance sheet", func(t *testing.T) {
		status, env := c.do(http.MethodGet, "/financial-statements/balance-sheet?as_of_date=2024-12-31", "acme", "", "")
		require.Equal(t, http.StatusOK, status)

		var sheet struct {
			Balanced bool `json:"balanced"`
			Totals   struct {
				Assets string `json:"totalAssets"`
			} `json:"totals"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &sheet))
		assert.True(t, sheet.Balanced)
		assert.Equal(t, "100", sheet.Totals.Assets)
	})

	t.Run("list with pagination", func(t *testing.T) {
		status, env := c.do(http.MethodGet, "/journal-entries?state=posted", "acme", "", "")
		require.Equal(t, http.StatusOK, status)
		require.NotNil(t, env.Pagination)
		assert.Equal(t, 1, env.Pagination.Total)
	})

	t.Run("account detail carries its position", func(t *testing.T) {
		status, env := c.do(http.MethodGet, "/chart-of-accounts/"+cash, "acme", "", "")
		require.Equal(t, http.StatusOK, status)
		var detail struct {
			Position struct {
				Net string `json:"net"`
			} `json:"position"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &detail))
		assert.Equal(t, "100", detail.Position.Net)
	})

	t.Run("referenced account cannot be deleted", func(t *testing.T) {
		status, env := c.do(http.MethodDelete, "/chart-of-accounts/"+cash, "acme", "", "")
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "CONFLICT", env.Error)
	})
}

func TestRequestErrors(t *testing.T) {
	c := newClient(t)

	tests := []struct {
		name       string
		method     string
		path       string
		company    string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"unknown path", http.MethodGet, "/invoices", "acme", "", http.StatusNotFound, "NOT_FOUND"},
		{"unsupported method", http.MethodPatch, "/journal-entries", "acme", "", http.StatusNotFound, "NOT_FOUND"},
		{"missing company", http.MethodGet, "/chart-of-accounts", "", "", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"malformed json", http.MethodPost, "/chart-of-accounts", "acme", "{", http.StatusBadRequest, "INVALID_INPUT"},
		{"empty body", http.MethodPost, "/fiscal-years", "acme", "", http.StatusBadRequest, "INVALID_INPUT"},
		{"bad paging", http.MethodGet, "/journal-entries?limit=ten", "acme", "", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad state", http.MethodGet, "/journal-entries?state=void", "acme", "", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"missing entry", http.MethodGet, "/journal-entries/nope", "acme", "", http.StatusNotFound, "NOT_FOUND"},
		{"reconcile another company", http.MethodPost, "/bank-reconciliation", "acme",
			`{"companyId":"globex","bankAccountId":"x","startDate":"2024-01-01","endDate":"2024-01-31"}`, http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := c.do(tt.method, tt.path, tt.company, "", tt.body)
			assert.Equal(t, tt.wantStatus, status)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantCode, env.Error)
		})
	}

	t.Run("preflight", func(t *testing.T) {
		status, _ := c.do(http.MethodOptions, "/journal-entries", "", "", "")
		assert.Equal(t, http.StatusOK, status)
	})
}

func TestToProxyRequest(t *testing.T) {
	t.Run("copies request fields", func(t *testing.T) {
		// Setup
		r := httptest.NewRequest(http.MethodPost, "/journal-entries?limit=5&limit=6", strings.NewReader(`{"date":"2024-01-01"}`))
		r.Header.Set("X-Company-Id", "acme")
		r.Header.Set(server.ActorHeader, "alice")

		// Act
		req, err := server.ToProxyRequest(r)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, req.HTTPMethod)
		assert.Equal(t, "/journal-entries", req.Path)
		assert.Equal(t, "5", req.QueryStringParameters["limit"])
		assert.Equal(t, "acme", req.Headers["X-Company-Id"])
		assert.Equal(t, "alice", req.RequestContext.Authorizer["sub"])
		assert.NotEmpty(t, req.RequestContext.RequestID)
		assert.Equal(t, `{"date":"2024-01-01"}`, req.Body)
	})

	t.Run("rejects oversized bodies", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/journal-entries", strings.NewReader(strings.Repeat("x", 1<<20+1)))
		_, err := server.ToProxyRequest(r)
		assert.Error(t, err)
	})
}
