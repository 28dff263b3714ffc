package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger(t *testing.T) {
	t.Run("counts events per company", func(t *testing.T) {
		// Setup
		m, err := NewLedger(prometheus.NewRegistry())
		require.NoError(t, err)

		// Act
		m.EntryCreated("acme")
		m.EntryCreated("acme")
		m.EntryDeleted("acme")
		m.EntryPosted("acme", 3)
		m.EntryPosted("globex", 2)
		m.BalanceSheetImbalance("acme")

		// Assert
		assert.Equal(t, 2.0, testutil.ToFloat64(m.entriesCreated.WithLabelValues("acme")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.entriesDeleted.WithLabelValues("acme")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.entriesPosted.WithLabelValues("acme")))
		assert.Equal(t, 3.0, testutil.ToFloat64(m.linesPosted.WithLabelValues("acme")))
		assert.Equal(t, 2.0, testutil.ToFloat64(m.linesPosted.WithLabelValues("globex")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.balanceSheetImbalance.WithLabelValues("acme")))
	})

	t.Run("registering twice fails", func(t *testing.T) {
		// Setup
		reg := prometheus.NewRegistry()
		_, err := NewLedger(reg)
		require.NoError(t, err)

		// Act
		_, err = NewLedger(reg)

		// Assert
		assert.Error(t, err)
	})

	t.Run("nil ledger records nothing", func(t *testing.T) {
		var m *Ledger
		assert.NotPanics(t, func() {
			m.EntryCreated("acme")
			m.EntryDeleted("acme")
			m.EntryPosted("acme", 1)
			m.BalanceSheetImbalance("acme")
		})
	})
}
