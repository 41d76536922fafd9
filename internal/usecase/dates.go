package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const canonicalDateLayout = "2006-01-02"

// ParseOrderDate normalizes an incoming order_date value to a calendar date.
// A value containing '/' is interpreted strictly as DD/MM/YYYY; anything
// malformed there (wrong part count, non-numeric parts, impossible calendar
// date) is ErrBadDateFormat, reported as a single top-level error before any
// field validation. A value without '/' must already be canonical YYYY-MM-DD;
// failures there are a field error on order_date instead.
func ParseOrderDate(raw string) (time.Time, error) {
	if strings.Contains(raw, "/") {
		parts := strings.Split(raw, "/")
		if len(parts) != 3 {
			return time.Time{}, ErrBadDateFormat
		}
		nums := make([]int, 3)
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return time.Time{}, ErrBadDateFormat
			}
			nums[i] = n
		}
		canonical := fmt.Sprintf("%04d-%02d-%02d", nums[2], nums[1], nums[0])
		t, err := time.Parse(canonicalDateLayout, canonical)
		if err != nil {
			return time.Time{}, ErrBadDateFormat
		}
		return t, nil
	}

	t, err := time.Parse(canonicalDateLayout, raw)
	if err != nil {
		return time.Time{}, FieldErrors{"order_date": "Invalid date. Use YYYY-MM-DD."}
	}
	return t, nil
}

// beforeDay compares by calendar date only, ignoring location offsets.
func beforeDay(a, b time.Time) bool {
	return a.Format(canonicalDateLayout) < b.Format(canonicalDateLayout)
}
