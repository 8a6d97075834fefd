package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionType(t *testing.T) {
	tests := []struct {
		input   string
		want    TransactionType
		wantErr bool
	}{
		{input: "Income", want: Income},
		{input: "expense", want: Expense},
		{input: " EXPENSE ", want: Expense},
		{input: "transfer", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTransactionType(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTransactionType)
				assert.False(t, got.Valid())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategories(t *testing.T) {
	values := func(opts []CategoryOption) []string {
		out := make([]string, 0, len(opts))
		for _, o := range opts {
			out = append(out, o.Value)
		}
		return out
	}

	assert.Equal(t, []string{"salary", "investments"}, values(Categories(Income)))
	assert.Equal(t, []string{"bills", "shopping", "utilities"}, values(Categories(Expense)))
	assert.Empty(t, Categories(TransactionType(0)))
}

func TestCategoriesReturnsCopy(t *testing.T) {
	opts := Categories(Income)
	opts[0].Value = "lottery"

	assert.Equal(t, "salary", Categories(Income)[0].Value)
}

func TestHasCategory(t *testing.T) {
	assert.True(t, HasCategory(Income, "salary"))
	assert.True(t, HasCategory(Income, "Salary"))
	assert.False(t, HasCategory(Income, "bills"))
	assert.True(t, HasCategory(Expense, "utilities"))
	assert.False(t, HasCategory(Expense, ""))
}

func TestTransactionJSON(t *testing.T) {
	tx := Transaction{
		AccountNumber:   "acc-1",
		Amount:          100.5,
		TransactionType: "income",
		Category:        "salary",
	}

	data, err := json.Marshal(tx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"account_number":"acc-1","amount":100.5,"transaction_type":"income","category":"salary"}`, string(data))

	tx.Description = "march payroll"
	data, err = json.Marshal(tx)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"description":"march payroll"`)
}
