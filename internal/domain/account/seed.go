package account

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
)

//go:embed defaults.yaml
var defaultChart []byte

// Chart is a chart-of-accounts definition as stored in YAML seed files.
// Parents are referenced by code and must be listed before their children.
type Chart struct {
	Accounts []ChartAccount `yaml:"accounts"`
}

// ChartAccount is a single account of a seed file.
type ChartAccount struct {
	Code   string      `yaml:"code"`
	Name   string      `yaml:"name"`
	Type   AccountType `yaml:"type"`
	Parent string      `yaml:"parent,omitempty"`
}

// ParseChart decodes a YAML chart of accounts.
func ParseChart(r io.Reader) (*Chart, error) {
	var chart Chart
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&chart); err != nil {
		return nil, errors.NewInvalidInputError("failed to parse chart of accounts", err)
	}

	seen := make(map[string]bool, len(chart.Accounts))
	for i, acc := range chart.Accounts {
		if acc.Code == "" {
			return nil, errors.NewValidationError(fmt.Sprintf("chart entry %d has no code", i))
		}
		if !acc.Type.Valid() {
			return nil, errors.NewValidationError(fmt.Sprintf("chart entry %s has invalid type %q", acc.Code, acc.Type))
		}
		if acc.Parent != "" && !seen[acc.Parent] {
			return nil, errors.NewValidationError(fmt.Sprintf("chart entry %s references parent %s before it is defined", acc.Code, acc.Parent))
		}
		if seen[acc.Code] {
			return nil, errors.NewValidationError(fmt.Sprintf("chart entry %s is defined twice", acc.Code))
		}
		seen[acc.Code] = true
	}
	return &chart, nil
}

// DefaultChart returns the built-in starter chart of accounts.
func DefaultChart() *Chart {
	chart, err := ParseChart(bytes.NewReader(defaultChart))
	if err != nil {
		panic(fmt.Sprintf("account: embedded default chart is invalid: %v", err))
	}
	return chart
}

// SeedAccounts creates every account of the chart that does not exist yet in
// the company. It returns the number of accounts created.
func (s *Service) SeedAccounts(ctx context.Context, companyID string, chart *Chart) (int, error) {
	created := 0
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ids := make(map[string]string, len(chart.Accounts))
		for _, entry := range chart.Accounts {
			existing, err := s.repo.GetAccountByCode(ctx, companyID, entry.Code)
			if err == nil {
				ids[entry.Code] = existing.AccountID
				continue
			}
			if !errors.Is(err, errors.ErrNotFound) {
				return err
			}

			acc, err := s.CreateAccount(ctx, companyID, &CreateAccountRequest{
				Code:        entry.Code,
				Name:        entry.Name,
				AccountType: entry.Type,
				ParentID:    ids[entry.Parent],
			})
			if err != nil {
				return err
			}
			ids[entry.Code] = acc.AccountID
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
