package price

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "empty input yields zero price",
			raw:      "",
			expected: "R$ 0,00",
		},
		{
			name:     "digit run without separator is read as cents",
			raw:      "4490",
			expected: "R$ 44,90",
		},
		{
			name:     "short fraction is right-padded",
			raw:      "44,9",
			expected: "R$ 44,90",
		},
		{
			name:     "symbol-prefixed price",
			raw:      "R$ 129,99",
			expected: "R$ 129,99",
		},
		{
			name:     "thousand separator is dropped",
			raw:      "R$ 1.234,56",
			expected: "R$ 1.234,56",
		},
		{
			name:     "whitespace and currency noise",
			raw:      "  R$  59 , 90  ",
			expected: "R$ 59,90",
		},
		{
			name:     "missing fraction after separator",
			raw:      "44,",
			expected: "R$ 44,00",
		},
		{
			name:     "unparsable input yields zero price",
			raw:      "preço indisponível",
			expected: "R$ 0,00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.raw))
		})
	}
}

func TestNormalizeFromParts(t *testing.T) {
	tests := []struct {
		name     string
		whole    string
		fraction string
		expected string
	}{
		{
			name:     "single digit fraction pads right",
			whole:    "44",
			fraction: "9",
			expected: "R$ 44,90",
		},
		{
			name:     "empty fraction pads to zeros",
			whole:    "44",
			fraction: "",
			expected: "R$ 44,00",
		},
		{
			name:     "full fraction kept as is",
			whole:    "1299",
			fraction: "95",
			expected: "R$ 1.299,95",
		},
		{
			name:     "fraction longer than two digits is truncated",
			whole:    "10",
			fraction: "999",
			expected: "R$ 10,99",
		},
		{
			name:     "empty whole defaults to zero",
			whole:    "",
			fraction: "50",
			expected: "R$ 0,50",
		},
		{
			name:     "both parts empty yields zero price",
			whole:    "",
			fraction: "",
			expected: "R$ 0,00",
		},
		{
			name:     "thousand separator inside whole part",
			whole:    "1.234",
			fraction: "56",
			expected: "R$ 1.234,56",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeFromParts(tt.whole, tt.fraction))
		})
	}
}
