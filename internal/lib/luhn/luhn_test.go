package luhn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		pan  string
		want bool
	}{
		{name: "visa test pan", pan: "4111111111111111", want: true},
		{name: "mastercard test pan", pan: "5555555555554444", want: true},
		{name: "mir test pan", pan: "2200000000000004", want: true},
		{name: "broken checksum", pan: "4111111111111112", want: false},
		{name: "empty", pan: "", want: false},
		{name: "letters", pan: "4111a11111111111", want: false},
		{name: "single digit zero", pan: "0", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.pan))
		})
	}
}
