// Package app wires the ledger services onto their stores.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/api/handlers"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/api/mcp/resources"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/api/mcp/tools"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/api/middleware"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/common/config"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/account"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/bankstatement"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/fiscalyear"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/journal"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/ledger"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/mcp"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/paymentterm"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/reconciliation"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/report"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/tax"
	dynamoClient "github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/platform/dynamodb/client"
	dynamodbRepository "github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/platform/dynamodb/repository"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/platform/metrics"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/platform/sqlite"
	sqliteRepository "github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/platform/sqlite/repository"
)

// Options tune how the services are assembled
type Options struct {
	// Sequencer overrides the SQLite entry-number counter
	Sequencer journal.Sequencer
	// Metrics receives ledger events; nil records nothing
	Metrics *metrics.Ledger
	// ReconcileWindowDays is the date tolerance for review matches
	ReconcileWindowDays int
}

// App holds every ledger service over one database
type App struct {
	Conn           *sqlite.Connection
	Accounts       *account.Service
	FiscalYears    *fiscalyear.Service
	Journal        *journal.Service
	Poster         *ledger.Poster
	BalanceSheet   *report.BalanceSheetGenerator
	Reconciler     reconciliation.Reconciler
	Taxes          *tax.Service
	PaymentTerms   *paymentterm.Service
	BankStatements *bankstatement.Service
}

// New assembles the services over conn
func New(conn *sqlite.Connection, opts Options, logger *slog.Logger) *App {
	accountRepo := sqliteRepository.NewSQLiteAccountRepository(conn, logger)
	fiscalYearRepo := sqliteRepository.NewSQLiteFiscalYearRepository(conn, logger)
	journalRepo := sqliteRepository.NewSQLiteJournalRepository(conn, logger)
	reportRepo := sqliteRepository.NewSQLiteReportRepository(conn, logger)
	taxRepo := sqliteRepository.NewSQLiteTaxRepository(conn, logger)
	paymentTermRepo := sqliteRepository.NewSQLitePaymentTermRepository(conn, logger)
	bankStatementRepo := sqliteRepository.NewSQLiteBankStatementRepository(conn, logger)

	sequencer := opts.Sequencer
	if sequencer == nil {
		sequencer = sqliteRepository.NewSQLiteSequencer(conn, logger)
	}

	accounts := account.NewService(accountRepo, conn, logger.With("component", "accounts"))
	fiscalYears := fiscalyear.NewService(fiscalYearRepo, conn, logger.With("component", "fiscal_years"))
	taxes := tax.NewService(taxRepo, accounts, conn, logger.With("component", "taxes"))

	a := &App{
		Conn:        conn,
		Accounts:    accounts,
		FiscalYears: fiscalYears,
		Taxes:       taxes,
		Journal: journal.NewService(journalRepo, sequencer, accounts, taxes, fiscalYears, conn,
			logger.With("component", "journal")).WithRecorder(opts.Metrics),
		Poster: ledger.NewPoster(journalRepo, accountRepo, fiscalYears, conn,
			logger.With("component", "poster")).WithRecorder(opts.Metrics),
		BalanceSheet: report.NewBalanceSheetGenerator(reportRepo, accountRepo, conn,
			logger.With("component", "balance_sheet")).WithRecorder(opts.Metrics),
		Reconciler: reconciliation.NewExactMatcher(bankStatementRepo, journalRepo, conn,
			opts.ReconcileWindowDays, logger.With("component", "reconciliation")),
		PaymentTerms:   paymentterm.NewService(paymentTermRepo, conn, logger.With("component", "payment_terms")),
		BankStatements: bankstatement.NewService(bankStatementRepo, accounts, conn, logger.With("component", "bank_statements")),
	}
	return a
}

// Handler returns the API Gateway handler with the middleware stack applied
func (a *App) Handler(trustForwardedJWT bool) middleware.APIGatewayHandler {
	router := handlers.NewRouter(handlers.Services{
		Accounts:       a.Accounts,
		FiscalYears:    a.FiscalYears,
		Journal:        a.Journal,
		Poster:         a.Poster,
		BalanceSheet:   a.BalanceSheet,
		Reconciler:     a.Reconciler,
		Taxes:          a.Taxes,
		PaymentTerms:   a.PaymentTerms,
		BankStatements: a.BankStatements,
	})
	return middleware.Chain(router.Handle,
		middleware.NewLoggingMiddleware(),
		middleware.NewRecoveryMiddleware(),
		middleware.NewRequestContextMiddleware(trustForwardedJWT),
	)
}

// MCPHandler returns the MCP endpoint with the middleware stack applied
func (a *App) MCPHandler(trustForwardedJWT bool, verbose bool, logger *slog.Logger) middleware.APIGatewayHandler {
	registry := mcp.NewHandlerRegistry()
	registry.RegisterTool(tools.NewCreateJournalEntryTool(a.Journal))
	registry.RegisterTool(tools.NewPostJournalEntryTool(a.Journal, a.Poster))
	registry.RegisterTool(tools.NewBalanceSheetTool(a.BalanceSheet))
	registry.RegisterResource(resources.NewChartOfAccountsResource(a.Accounts))
	registry.RegisterResource(resources.NewJournalEntriesResource(a.Journal))
	registry.RegisterResource(resources.NewJournalEntryResource(a.Journal))

	handler := handlers.NewMCPHandler(mcp.NewService(logger.With("component", "mcp"), registry), verbose)
	return middleware.Chain(handler.Handle,
		middleware.NewLoggingMiddleware(),
		middleware.NewRecoveryMiddleware(),
		middleware.NewRequestContextMiddleware(trustForwardedJWT),
	)
}

// Build opens and migrates the database from cfg and assembles the app.
// reg may be nil to skip metrics.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*App, error) {
	conn, err := sqlite.Open(cfg.DBPath, logger)
	if err != nil {
		return nil, err
	}
	if err := conn.Migrate(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	opts := Options{ReconcileWindowDays: cfg.ReconcileWindowDays}
	if reg != nil {
		if opts.Metrics, err = metrics.NewLedger(reg); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	if cfg.SequenceStore == config.SequenceStoreDynamoDB {
		dbClient, err := dynamoClient.NewDynamoDBClient(ctx, cfg.AWSRegion)
		if err != nil {
			conn.Close()
			return nil, err
		}
		opts.Sequencer = dynamodbRepository.NewDynamoDBSequencer(dbClient, cfg.DynamoDBTableName, logger)
		logger.Info("using DynamoDB entry sequencer", "table", cfg.DynamoDBTableName)
	}

	return New(conn, opts, logger), nil
}

// Close releases the database
func (a *App) Close() error {
	return a.Conn.Close()
}
