// README: Common value objects shared across modules.
package types

import (
	"fmt"
	"math"
	"strings"
)

// Money carries a cost estimate together with its ISO 4217 currency code.
// Amounts are provider estimates, not ledger values, so float64 is acceptable.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

func (m Money) IsZero() bool {
	return m.Amount == 0 && m.Currency == ""
}

// Round2 returns the amount rounded to two decimal places.
func (m Money) Round2() Money {
	return Money{Amount: math.Round(m.Amount*100) / 100, Currency: m.Currency}
}

func (m Money) String() string {
	return fmt.Sprintf("%.2f %s", m.Amount, strings.ToUpper(m.Currency))
}

// NormalizeCurrency uppercases and trims a currency code.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
