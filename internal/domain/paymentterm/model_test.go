package paymentterm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDueDate(t *testing.T) {
	invoice := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		term PaymentTerm
		want time.Time
	}{
		{"net 30", PaymentTerm{Type: Net, Days: 30}, time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC)},
		{"immediate", PaymentTerm{Type: Net}, invoice},
		{"end of month", PaymentTerm{Type: EndOfMonth}, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)},
		{"end of month plus 10", PaymentTerm{Type: EndOfMonth, Days: 10}, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.term.DueDate(invoice))
		})
	}

	t.Run("leap february", func(t *testing.T) {
		term := PaymentTerm{Type: EndOfMonth}
		assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), term.DueDate(time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)))
	})
}
