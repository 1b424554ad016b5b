package shared_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
)

func TestClampInt_Coercion(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  int
	}{
		{"nil", nil, 0},
		{"bool true", true, 0},
		{"plain int", 42, 42},
		{"negative int", -5, 0},
		{"above ceiling", 123456, shared.MaxQuantity},
		{"fraction truncates", 3.9, 3},
		{"negative fraction", -0.5, 0},
		{"NaN", math.NaN(), 0},
		{"infinity", math.Inf(1), 0},
		{"numeric string", "17", 17},
		{"string with noise", " 1,200 pcs", 1200},
		{"negative string", "-12", 0},
		{"minus in the middle", "1-2", 0},
		{"empty string", "", 0},
		{"letters only", "abc", 0},
		{"long digit run", "0000000000123", 123},
		{"huge string", "99999999999999999999", shared.MaxQuantity},
		{"json number", json.Number("8"), 8},
		{"uint", uint(7), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.ClampInt(tt.input))
		})
	}
}

func TestClampInt_IdempotentAndBounded(t *testing.T) {
	inputs := []any{nil, -1, 0, 1, 4.7, 99999, 100000, "77x", "-", "--3", math.Inf(-1), int64(math.MaxInt64)}

	for _, in := range inputs {
		once := shared.ClampInt(in)
		twice := shared.ClampInt(once)

		assert.Equal(t, once, twice, "input %v", in)
		assert.GreaterOrEqual(t, once, 0)
		assert.LessOrEqual(t, once, shared.MaxQuantity)
	}
}

func TestClampLevel(t *testing.T) {
	assert.Equal(t, 4, shared.ClampLevel(9))
	assert.Equal(t, 2, shared.ClampLevel("2"))
	assert.Equal(t, 0, shared.ClampLevel(-3))
}
