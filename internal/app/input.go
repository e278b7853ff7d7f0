package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrNotANumber = errors.New("not a number")
	ErrOutOfRange = errors.New("index out of range")
)

// ParseIndex parses a 1-based position in a list of n tasks.
func ParseIndex(input string, n int) (int, error) {
	idx, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, input)
	}
	if idx < 1 || idx > n {
		return 0, fmt.Errorf("%w: %d not in [1, %d]", ErrOutOfRange, idx, n)
	}
	return idx, nil
}
