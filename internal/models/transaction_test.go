package models

import (
	"encoding/json"
	"errors"
	"testing"

	"fjacquet/finance-ledger/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validExpense() Transaction {
	return Transaction{
		ID:          "tx-1",
		Amount:      decimal.NewFromInt(50),
		Date:        "2024-01-05",
		Description: "Groceries",
		Type:        TypeExpense,
		Category:    string(FoodAndDining),
	}
}

func TestTransaction_SignedAmount(t *testing.T) {
	tx := validExpense()
	assert.True(t, tx.IsExpense())
	assert.False(t, tx.IsIncome())
	assert.True(t, tx.SignedAmount().Equal(decimal.NewFromInt(-50)))

	tx.Type = TypeIncome
	assert.True(t, tx.IsIncome())
	assert.True(t, tx.SignedAmount().Equal(decimal.NewFromInt(50)))
}

func TestTransaction_UnmarshalJSON_NormalisesSign(t *testing.T) {
	blob := `[
		{"id":"1","amount":-50,"date":"2024-01-05","description":"Lunch","type":"expense","category":"Food & Dining"},
		{"id":"2","amount":2000,"date":"2024-01-01","description":"Pay","type":"income","category":"Salary"},
		{"id":"3","amount":"12.34","date":"2024-01-02","description":"Bus","type":"expense","category":"Transportation"}
	]`

	var txs []Transaction
	require.NoError(t, json.Unmarshal([]byte(blob), &txs))
	require.Len(t, txs, 3)

	assert.Equal(t, "50", txs[0].Amount.String())
	assert.Equal(t, TypeExpense, txs[0].Type)
	assert.Equal(t, "2000", txs[1].Amount.String())
	assert.Equal(t, "12.34", txs[2].Amount.String())
}

func TestTransaction_JSONRoundTripKeepsShape(t *testing.T) {
	data, err := json.Marshal(validExpense())
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, key := range []string{"id", "amount", "date", "description", "type", "category"} {
		assert.Contains(t, fields, key)
	}
}

func TestTransaction_MonthAndInMonth(t *testing.T) {
	tx := validExpense()
	assert.Equal(t, "2024-01", tx.Month())
	assert.True(t, tx.InMonth("2024-01"))
	assert.False(t, tx.InMonth("2024-02"))

	tx.Date = "2024"
	assert.Equal(t, "2024", tx.Month())
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(*Transaction)
		failedFields []string
	}{
		{"valid expense", func(*Transaction) {}, nil},
		{"valid income", func(tx *Transaction) {
			tx.Type = TypeIncome
			tx.Category = string(Salary)
		}, nil},
		{"zero amount", func(tx *Transaction) { tx.Amount = decimal.Zero }, []string{"amount"}},
		{"blank description", func(tx *Transaction) { tx.Description = "   " }, []string{"description"}},
		{"missing date", func(tx *Transaction) { tx.Date = "" }, []string{"date"}},
		{"bad date shape", func(tx *Transaction) { tx.Date = "05/01/2024" }, []string{"date"}},
		{"missing category", func(tx *Transaction) { tx.Category = "" }, []string{"category"}},
		{"category of the other type", func(tx *Transaction) { tx.Category = string(Salary) }, []string{"category"}},
		{"unknown type", func(tx *Transaction) { tx.Type = "transfer" }, []string{"type"}},
		{"everything wrong", func(tx *Transaction) {
			tx.Amount = decimal.NewFromInt(-1)
			tx.Description = ""
			tx.Date = ""
			tx.Category = ""
		}, []string{"amount", "description", "date", "category"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validExpense()
			tt.mutate(&tx)
			err := tx.Validate()

			if len(tt.failedFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var errs validation.Errors
			require.True(t, errors.As(err, &errs))
			for _, field := range tt.failedFields {
				assert.True(t, errs.Has(field), "expected %s to fail", field)
			}
		})
	}
}

func TestBudget_Validate(t *testing.T) {
	valid := Budget{ID: "b1", Category: FoodAndDining, Amount: decimal.NewFromInt(100), Month: "2024-01"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Budget)
		field  string
	}{
		{"income category", func(b *Budget) { b.Category = ExpenseCategory(Salary) }, "category"},
		{"missing category", func(b *Budget) { b.Category = "" }, "category"},
		{"zero amount", func(b *Budget) { b.Amount = decimal.Zero }, "amount"},
		{"missing month", func(b *Budget) { b.Month = "" }, "month"},
		{"bad month", func(b *Budget) { b.Month = "2024-13" }, "month"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid
			tt.mutate(&b)
			var errs validation.Errors
			require.True(t, errors.As(b.Validate(), &errs))
			assert.True(t, errs.Has(tt.field))
		})
	}
}

func TestBudget_SameSlot(t *testing.T) {
	a := Budget{ID: "a", Category: FoodAndDining, Month: "2024-01"}
	b := Budget{ID: "b", Category: FoodAndDining, Month: "2024-01"}
	c := Budget{ID: "c", Category: FoodAndDining, Month: "2024-02"}
	assert.True(t, a.SameSlot(b))
	assert.False(t, a.SameSlot(c))
}
