package user

import (
	"errors"
	"math"
	"strconv"
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// ParseAmount parses a decimal-string amount. Empty strings read as zero.
func ParseAmount(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// FormatAmount renders a balance back to its decimal-string form without
// trailing zeros ("60", not "60.00").
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// AddBalance returns balance + amount.
func AddBalance(balance, amount string) (string, error) {
	b, err := ParseAmount(balance)
	if err != nil {
		return "", err
	}
	a, err := ParseAmount(amount)
	if err != nil {
		return "", err
	}
	return FormatAmount(b + a), nil
}

// SubBalance returns balance - amount, refusing to go negative.
func SubBalance(balance, amount string) (string, error) {
	b, err := ParseAmount(balance)
	if err != nil {
		return "", err
	}
	a, err := ParseAmount(amount)
	if err != nil {
		return "", err
	}
	if a > b {
		return "", ErrInsufficientBalance
	}
	return FormatAmount(b - a), nil
}
