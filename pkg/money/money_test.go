package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMinorUnits(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{"whole amount drops fraction", 150000, "1500"},
		{"fractional amount keeps two digits", 150050, "1500.50"},
		{"single minor unit pads", 101, "1.01"},
		{"zero", 0, "0"},
		{"below one major unit", 99, "0.99"},
		{"negative", -2500, "-25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMinorUnits(tt.amount))
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1500 USD", Format(150000, "USD"))
	assert.Equal(t, "19.90 EUR", Format(1990, "EUR"))
}
