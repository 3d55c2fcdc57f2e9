// Package configval converts raw config values into the types the
// ConfigStore getters return. Values arrive from TOML (int64, []any),
// from JSON-like sources (float64) or from Set calls with native Go types.
package configval

import "math"

// String returns v as a string, or "" for other types.
func String(v any) string {
	s, _ := v.(string)
	return s
}

// Int returns v as an int. Floats count only when whole, so "10.0" in a
// hand-edited file still reads as 10.
func Int(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		if n == math.Trunc(n) {
			return int(n)
		}
	}
	return 0
}

// Float returns v as a float64 for any numeric type.
func Float(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

// Bool returns v as a bool, or false for other types.
func Bool(v any) bool {
	b, _ := v.(bool)
	return b
}

// Strings returns v as a fresh string slice. Non-string items of a []any
// are skipped; other types yield nil.
func Strings(v any) []string {
	switch s := v.(type) {
	case []string:
		return append([]string(nil), s...)
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}
