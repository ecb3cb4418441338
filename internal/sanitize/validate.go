package sanitize

import (
	"strconv"
	"strings"
	"time"
)

// ValidDate reports whether s matches YYYY-MM-DD and denotes a real calendar
// date (2024-02-30 is rejected).
func ValidDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if i == 4 || i == 7 {
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ValidTime reports whether s is empty (time is optional almost everywhere)
// or matches HH:MM with hour 0-23 and minute 0-59.
func ValidTime(s string) bool {
	if s == "" {
		return true
	}
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	hours, _ := strconv.Atoi(s[:2])
	minutes, _ := strconv.Atoi(s[3:])
	return hours <= 23 && minutes <= 59
}

// ValidNumber reports whether v is a number, or a string representation of
// one, whose value lies in [min, max]. Coercion failures yield false, never
// an error.
func ValidNumber(v any, min, max int) bool {
	switch n := v.(type) {
	case int:
		return n >= min && n <= max
	case int64:
		return n >= int64(min) && n <= int64(max)
	case float64:
		return n >= float64(min) && n <= float64(max)
	case bool:
		i := 0
		if n {
			i = 1
		}
		return i >= min && i <= max
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return false
		}
		return i >= min && i <= max
	}
	return false
}
