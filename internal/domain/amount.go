package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// maxFractionDigits is the precision the merchant protocol accepts for amounts.
const maxFractionDigits = 8

var currencyPattern = regexp.MustCompile(`^[A-Za-z]{1,11}$`)

// Amount is a currency-tagged decimal, rendered on the wire as "CUR:value".
type Amount struct {
	Currency string
	Value    decimal.Decimal
}

func NewAmount(currency string, value decimal.Decimal) (Amount, error) {
	if !currencyPattern.MatchString(currency) {
		return Amount{}, NewInvalidAmountError(fmt.Sprintf("currency %q is not 1-11 letters", currency))
	}
	if value.IsNegative() {
		return Amount{}, NewInvalidAmountError("amount cannot be negative")
	}
	if !value.Truncate(maxFractionDigits).Equal(value) {
		return Amount{}, NewInvalidAmountError(fmt.Sprintf("amount %s has more than %d fractional digits", value, maxFractionDigits))
	}
	return Amount{Currency: currency, Value: value}, nil
}

// ParseAmount parses the "CUR:value" wire form.
func ParseAmount(raw string) (Amount, error) {
	currency, value, ok := strings.Cut(raw, ":")
	if !ok {
		return Amount{}, NewInvalidAmountError(fmt.Sprintf("amount %q lacks a currency prefix", raw))
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Amount{}, NewInvalidAmountError(fmt.Sprintf("amount %q: %v", raw, err))
	}
	return NewAmount(currency, d)
}

func (a Amount) String() string {
	return a.Currency + ":" + a.Value.String()
}

// Equal compares currencies case-insensitively and values numerically.
func (a Amount) Equal(other Amount) bool {
	return strings.EqualFold(a.Currency, other.Currency) && a.Value.Equal(other.Value)
}
