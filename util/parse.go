package util

import (
	"strconv"
	"strings"
)

var sizeUnits = []struct {
	suffix     string
	multiplier int64
}{
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
	{"B", 1},
}

// ParseSize parses a size such as "10MB", "512KB" or "2048" into bytes.
// It returns defaultBytes when s is empty, malformed or negative.
func ParseSize(s string, defaultBytes int64) int64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return defaultBytes
	}

	multiplier := int64(1)
	for _, u := range sizeUnits {
		if strings.HasSuffix(s, u.suffix) {
			multiplier = u.multiplier
			s = strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			break
		}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return defaultBytes
	}
	return n * multiplier
}

// FormatSize renders n bytes with the largest unit that divides it evenly,
// the inverse of ParseSize.
func FormatSize(n int64) string {
	for _, u := range sizeUnits {
		if n >= u.multiplier && n%u.multiplier == 0 {
			return strconv.FormatInt(n/u.multiplier, 10) + u.suffix
		}
	}
	return strconv.FormatInt(n, 10) + "B"
}

// MaskSecret keeps the first visiblePrefix characters of s and hides the
// rest. Short or empty secrets are fully masked.
func MaskSecret(s string, visiblePrefix int) string {
	if s == "" {
		return ""
	}
	if len(s) <= visiblePrefix*2 {
		return "***"
	}
	return s[:visiblePrefix] + "***"
}
