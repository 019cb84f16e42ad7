// Package conv provides checked narrowing conversions for the regexp
// engine.
//
// Program counters are stored as uint32 inside instructions. These
// helpers panic on overflow, since an out-of-range value indicates a
// programming error rather than bad user input: the compiler bounds
// program sizes well below the uint32 limit.
package conv

import "math"

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	if n < 0 || uint64(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}
