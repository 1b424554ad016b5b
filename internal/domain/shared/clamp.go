package shared

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// MaxQuantity is the ceiling for any stored material count.
	MaxQuantity = 99999
	// MaxLevel is the highest upgrade level an armor piece can reach.
	MaxLevel = 4
)

// ClampInt coerces an arbitrary value into an integer in [0, MaxQuantity].
//
// Strings keep only digits and '-' and must then read as an optionally
// negative integer; anything else yields 0. Numbers truncate toward zero.
// nil, booleans, NaN, infinities and negatives all become 0.
func ClampInt(v any) int {
	switch n := v.(type) {
	case nil, bool:
		return 0
	case int:
		return clampInt64(int64(n))
	case int8:
		return clampInt64(int64(n))
	case int16:
		return clampInt64(int64(n))
	case int32:
		return clampInt64(int64(n))
	case int64:
		return clampInt64(n)
	case uint:
		return clampUint64(uint64(n))
	case uint8:
		return clampUint64(uint64(n))
	case uint16:
		return clampUint64(uint64(n))
	case uint32:
		return clampUint64(uint64(n))
	case uint64:
		return clampUint64(n)
	case float32:
		return clampFloat(float64(n))
	case float64:
		return clampFloat(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return clampString(n.String())
		}
		return clampFloat(f)
	case string:
		return clampString(n)
	default:
		return clampString(fmt.Sprint(n))
	}
}

// ClampLevel clamps v into the valid upgrade level range [0, MaxLevel].
func ClampLevel(v any) int {
	return min(ClampInt(v), MaxLevel)
}

func clampInt64(n int64) int {
	if n <= 0 {
		return 0
	}
	if n > MaxQuantity {
		return MaxQuantity
	}
	return int(n)
}

func clampUint64(n uint64) int {
	if n > MaxQuantity {
		return MaxQuantity
	}
	return int(n)
}

func clampFloat(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	if f > MaxQuantity {
		return MaxQuantity
	}
	return int(math.Trunc(f))
}

func clampString(s string) int {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	digits := strings.TrimPrefix(cleaned, "-")
	if digits == "" || strings.Contains(digits, "-") {
		return 0
	}
	if strings.HasPrefix(cleaned, "-") {
		return 0
	}

	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return 0
	}
	if len(digits) > len(strconv.Itoa(MaxQuantity)) {
		return MaxQuantity
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return clampInt64(int64(n))
}
