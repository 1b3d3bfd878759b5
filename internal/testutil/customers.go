package testutil

import (
	"fmt"
	"testing"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/table"
)

var (
	countries = []string{"France", "Germany", "Spain"}
	feedback  = []string{
		"Great service, very happy with the support",
		"Terrible app, fees are awful",
		"It is fine",
		"",
	}
)

// Customers returns a deterministic n-row customer table with the full
// churn schema. Every fourth and fifth row exited, every third row has a
// zero balance, so both outcome groups contain zero-balance customers once
// n >= 4.
func Customers(t testing.TB, n int) *table.Table {
	t.Helper()
	cols := []string{
		"RowNumber", "CustomerId", "Surname", "CreditScore", "Country", "Gender",
		"Age", "Tenure", "Balance (EUR)", "NumberOfProducts", "HasCreditCard",
		"IsActiveMember", "EstimatedSalary", "CustomerFeedback", "Exited",
	}
	rows := make([][]table.Value, n)
	for i := 0; i < n; i++ {
		exited := int64(0)
		if i%4 == 0 || i%5 == 0 {
			exited = 1
		}
		balance := table.Real(float64(50000 + 1375*i))
		if i%3 == 0 {
			balance = table.Int(0)
		}
		gender := "Female"
		if i%2 == 1 {
			gender = "Male"
		}
		rows[i] = []table.Value{
			table.Int(int64(i + 1)),
			table.Int(int64(15600000 + i)),
			table.Str(fmt.Sprintf("Surname%d", i)),
			table.Int(int64(500 + (i*37)%350)),
			table.Str(countries[i%len(countries)]),
			table.Str(gender),
			table.Int(int64(22 + (i*7)%45)),
			table.Int(int64(i % 11)),
			balance,
			table.Int(int64(1 + i%4)),
			table.Int(int64(i % 2)),
			table.Int(int64((i / 2) % 2)),
			table.Real(float64(10000 + (i*4733)%190000) + 0.25),
			table.Str(feedback[i%len(feedback)]),
			table.Int(exited),
		}
	}
	tb, err := table.New(cols, rows)
	if err != nil {
		t.Fatalf("customers fixture: %v", err)
	}
	return tb
}
