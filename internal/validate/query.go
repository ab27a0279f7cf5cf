package validate

import (
	"strconv"
	"strings"
)

// OptionalPaging parses limit/offset. A missing or invalid limit yields 0
// (no limit); limits above max are clamped. Offsets below zero yield 0.
func OptionalPaging(limitRaw, offsetRaw string, max int) (int, int) {
	limit := 0
	if v, err := strconv.Atoi(strings.TrimSpace(limitRaw)); err == nil && v >= 1 {
		limit = min(v, max)
	}
	offset := 0
	if v, err := strconv.Atoi(strings.TrimSpace(offsetRaw)); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}

// OptionalInt returns 0 unless raw is a positive integer.
func OptionalInt(raw string) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 1 {
		return 0
	}
	return v
}
