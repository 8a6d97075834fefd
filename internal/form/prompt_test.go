package form

import (
	"testing"

	"transaction-entry/internal/domain"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
)

func optionValues[T comparable](opts []huh.Option[T]) []T {
	out := make([]T, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.Value)
	}
	return out
}

func TestCategoryOptions(t *testing.T) {
	tests := []struct {
		typ  string
		want []string
	}{
		{typ: "Income", want: []string{"salary", "investments"}},
		{typ: "Expense", want: []string{"bills", "shopping", "utilities"}},
		{typ: "expense", want: []string{"bills", "shopping", "utilities"}},
		{typ: "bogus"},
		{typ: ""},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			opts := categoryOptions(tt.typ)
			if tt.want == nil {
				assert.Nil(t, opts)
				return
			}
			assert.Equal(t, tt.want, optionValues(opts))
		})
	}
}

func TestCategoryOptionsLabels(t *testing.T) {
	opts := categoryOptions("Income")
	assert.Equal(t, "Salary", opts[0].Key)
	assert.Equal(t, "Investments", opts[1].Key)
}

func TestTypeOptions(t *testing.T) {
	assert.Equal(t, []string{"Income", "Expense"}, optionValues(typeOptions()))
	for _, o := range typeOptions() {
		assert.NoError(t, ValidateTransactionType(o.Value))
	}
}

func TestAccountOptions(t *testing.T) {
	opts := accountOptions([]domain.Account{
		{ID: "1", Name: "Daily", Number: "acc-1"},
		{ID: "2", Name: "Savings", Number: "acc-2"},
	})

	assert.Equal(t, []string{"acc-1", "acc-2"}, optionValues(opts))
	assert.Equal(t, "Daily (acc-1)", opts[0].Key)
	assert.Empty(t, accountOptions(nil))
}
