package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidTransactionType = errors.New("transaction type must be Income or Expense")

type TransactionType int

const (
	Income TransactionType = iota + 1
	Expense
)

func (t TransactionType) String() string {
	switch t {
	case Income:
		return "Income"
	case Expense:
		return "Expense"
	default:
		return ""
	}
}

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// ParseTransactionType accepts "Income" or "Expense" in any case
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return Income, nil
	case "expense":
		return Expense, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidTransactionType, s)
	}
}

// CategoryOption is a selectable category: Label is shown, Value is submitted
type CategoryOption struct {
	Label string
	Value string
}

var categories = map[TransactionType][]CategoryOption{
	Income: {
		{Label: "Salary", Value: "salary"},
		{Label: "Investments", Value: "investments"},
	},
	Expense: {
		{Label: "Bills", Value: "bills"},
		{Label: "Shopping", Value: "shopping"},
		{Label: "Utilities", Value: "utilities"},
	},
}

// Categories returns the categories allowed for a transaction type.
// The slice is a copy and may be modified by the caller.
func Categories(t TransactionType) []CategoryOption {
	opts := categories[t]
	out := make([]CategoryOption, len(opts))
	copy(out, opts)
	return out
}

// HasCategory reports whether category belongs to t, ignoring case
func HasCategory(t TransactionType, category string) bool {
	for _, opt := range categories[t] {
		if strings.EqualFold(opt.Value, category) {
			return true
		}
	}
	return false
}

// Account is a target account as returned by the account service
type Account struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Number string `json:"number"`
}

// Transaction is the normalized payload sent to the transactions endpoint
type Transaction struct {
	AccountNumber   string  `json:"account_number"`
	Amount          float64 `json:"amount"`
	TransactionType string  `json:"transaction_type"`
	Category        string  `json:"category"`
	Description     string  `json:"description,omitempty"`
}
