// Package metrics exposes ledger activity as Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ledger"

// Ledger counts journal and reporting events per company. A nil *Ledger is
// valid and records nothing.
type Ledger struct {
	entriesCreated        *prometheus.CounterVec
	entriesDeleted        *prometheus.CounterVec
	entriesPosted         *prometheus.CounterVec
	linesPosted           *prometheus.CounterVec
	balanceSheetImbalance *prometheus.CounterVec
}

// NewLedger creates the collectors and registers them with reg.
func NewLedger(reg prometheus.Registerer) (*Ledger, error) {
	m := &Ledger{
		entriesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journal_entries_created_total",
			Help:      "Draft journal entries created.",
		}, []string{"company"}),
		entriesDeleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journal_entries_deleted_total",
			Help:      "Draft journal entries deleted.",
		}, []string{"company"}),
		entriesPosted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journal_entries_posted_total",
			Help:      "Journal entries posted to the ledger.",
		}, []string{"company"}),
		linesPosted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journal_lines_posted_total",
			Help:      "Journal lines applied to account positions.",
		}, []string{"company"}),
		balanceSheetImbalance: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balance_sheet_imbalance_total",
			Help:      "Balance sheets whose assets differ from liabilities plus equity by more than the tolerance.",
		}, []string{"company"}),
	}

	for _, c := range []prometheus.Collector{
		m.entriesCreated, m.entriesDeleted, m.entriesPosted, m.linesPosted, m.balanceSheetImbalance,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// EntryCreated implements journal.Recorder
func (m *Ledger) EntryCreated(companyID string) {
	if m == nil {
		return
	}
	m.entriesCreated.WithLabelValues(companyID).Inc()
}

// EntryDeleted implements journal.Recorder
func (m *Ledger) EntryDeleted(companyID string) {
	if m == nil {
		return
	}
	m.entriesDeleted.WithLabelValues(companyID).Inc()
}

// EntryPosted implements ledger.Recorder
func (m *Ledger) EntryPosted(companyID string, lines int) {
	if m == nil {
		return
	}
	m.entriesPosted.WithLabelValues(companyID).Inc()
	m.linesPosted.WithLabelValues(companyID).Add(float64(lines))
}

// BalanceSheetImbalance implements report.Recorder
func (m *Ledger) BalanceSheetImbalance(companyID string) {
	if m == nil {
		return
	}
	m.balanceSheetImbalance.WithLabelValues(companyID).Inc()
}
