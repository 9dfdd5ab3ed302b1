package sizeutil

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidSize - the size string has no unit, no number, or a value out of range.
var ErrInvalidSize = errors.New("invalid size")

// ParseSize - parses a human readable size like "4KB", "10mb" or "200B"
// into a byte count. Supported units are B, KB, MB and GB, case-insensitive.
func ParseSize(size string) (int, error) {
	s := strings.ToUpper(strings.TrimSpace(size))
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidSize)
	}

	multiplier := 1
	switch {
	case strings.HasSuffix(s, "KB"):
		multiplier = 1 << 10
		s = strings.TrimSuffix(s, "KB")
	case strings.HasSuffix(s, "MB"):
		multiplier = 1 << 20
		s = strings.TrimSuffix(s, "MB")
	case strings.HasSuffix(s, "GB"):
		multiplier = 1 << 30
		s = strings.TrimSuffix(s, "GB")
	case strings.HasSuffix(s, "B"):
		s = strings.TrimSuffix(s, "B")
	default:
		return 0, fmt.Errorf("%w: missing unit in %q", ErrInvalidSize, size)
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, size)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative size %q", ErrInvalidSize, size)
	}
	if n > math.MaxInt/multiplier {
		return 0, fmt.Errorf("%w: %q is too large", ErrInvalidSize, size)
	}

	return n * multiplier, nil
}
