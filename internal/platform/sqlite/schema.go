package sqlite

// Schema defines the SQL statements to create the ledger tables.
// Amounts are decimal strings; dates are YYYY-MM-DD; timestamps RFC 3339.
const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
    account_id TEXT PRIMARY KEY,
    company_id TEXT NOT NULL,
    code TEXT NOT NULL,
    name TEXT NOT NULL,
    account_type TEXT NOT NULL CHECK (account_type IN ('asset', 'liability', 'equity', 'revenue', 'expense')),
    parent_id TEXT REFERENCES accounts(account_id),
    active INTEGER NOT NULL DEFAULT 1,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    UNIQUE(company_id, code)
);

CREATE INDEX IF NOT EXISTS idx_accounts_parent
    ON accounts(parent_id);

-- Running posted net per account, written only when an entry is posted
CREATE TABLE IF NOT EXISTS account_positions (
    account_id TEXT PRIMARY KEY REFERENCES accounts(account_id),
    net TEXT NOT NULL,
    last_journal_entry_id TEXT,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS fiscal_years (
    fiscal_year_id TEXT PRIMARY KEY,
    company_id TEXT NOT NULL,
    name TEXT NOT NULL,
    start_date TEXT NOT NULL,
    end_date TEXT NOT NULL,
    state TEXT NOT NULL CHECK (state IN ('open', 'closed')),
    closed_at TEXT,
    closed_by TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    CHECK (start_date <= end_date)
);

CREATE INDEX IF NOT EXISTS idx_fiscal_years_company
    ON fiscal_years(company_id, start_date);

CREATE TABLE IF NOT EXISTS taxes (
    tax_id TEXT PRIMARY KEY,
    company_id TEXT NOT NULL,
    name TEXT NOT NULL,
    rate TEXT NOT NULL,
    tax_type TEXT NOT NULL CHECK (tax_type IN ('sale', 'purchase', 'none')),
    account_id TEXT REFERENCES accounts(account_id),
    active INTEGER NOT NULL DEFAULT 1,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS payment_terms (
    payment_term_id TEXT PRIMARY KEY,
    company_id TEXT NOT NULL,
    name TEXT NOT NULL,
    days INTEGER NOT NULL CHECK (days >= 0),
    term_type TEXT NOT NULL CHECK (term_type IN ('net', 'end_of_month')),
    active INTEGER NOT NULL DEFAULT 1,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

-- Per-company entry number counter
CREATE TABLE IF NOT EXISTS journal_sequences (
    company_id TEXT PRIMARY KEY,
    last_value INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS journal_entries (
    journal_entry_id TEXT PRIMARY KEY,
    entry_number TEXT NOT NULL,
    company_id TEXT NOT NULL,
    fiscal_year_id TEXT NOT NULL REFERENCES fiscal_years(fiscal_year_id),
    entry_date TEXT NOT NULL,
    reference TEXT NOT NULL DEFAULT '',
    state TEXT NOT NULL CHECK (state IN ('draft', 'posted')),
    created_by TEXT NOT NULL DEFAULT '',
    posted_by TEXT,
    posted_at TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    UNIQUE(company_id, entry_number)
);

CREATE INDEX IF NOT EXISTS idx_journal_entries_company_date
    ON journal_entries(company_id, entry_date);

CREATE INDEX IF NOT EXISTS idx_journal_entries_fiscal_year
    ON journal_entries(fiscal_year_id);

CREATE TABLE IF NOT EXISTS journal_entry_lines (
    line_id TEXT PRIMARY KEY,
    journal_entry_id TEXT NOT NULL REFERENCES journal_entries(journal_entry_id),
    position INTEGER NOT NULL,
    account_id TEXT NOT NULL REFERENCES accounts(account_id),
    debit TEXT NOT NULL,
    credit TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    tax_id TEXT REFERENCES taxes(tax_id),
    partner_id TEXT,
    analytic_account_id TEXT
);

CREATE INDEX IF NOT EXISTS idx_journal_entry_lines_entry
    ON journal_entry_lines(journal_entry_id, position);

CREATE INDEX IF NOT EXISTS idx_journal_entry_lines_account
    ON journal_entry_lines(account_id);

CREATE TABLE IF NOT EXISTS bank_statements (
    bank_statement_id TEXT PRIMARY KEY,
    company_id TEXT NOT NULL,
    bank_account_id TEXT NOT NULL REFERENCES accounts(account_id),
    statement_date TEXT NOT NULL,
    reference TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS bank_statement_lines (
    line_id TEXT PRIMARY KEY,
    bank_statement_id TEXT NOT NULL REFERENCES bank_statements(bank_statement_id),
    position INTEGER NOT NULL,
    line_date TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    amount TEXT NOT NULL,
    reference TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_bank_statement_lines_statement
    ON bank_statement_lines(bank_statement_id, position);
`
