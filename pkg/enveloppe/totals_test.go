package enveloppe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func incomeLine(id string, amount float64) BudgetLine {
	return BudgetLine{ID: id, Name: "salary", Amount: amount, Kind: KindIncome, Recurrence: RecurrenceFixed}
}

func expenseLine(id string, amount float64) BudgetLine {
	return BudgetLine{ID: id, Name: "groceries", Amount: amount, Kind: KindExpense, Recurrence: RecurrenceFixed}
}

func allocatedExpense(id, lineID string, amount float64) Transaction {
	return Transaction{ID: id, BudgetLineID: lineID, Name: "store", Amount: amount, Kind: KindExpense}
}

func remainingOf(lines []BudgetLine, transactions []Transaction, rollover float64) float64 {
	income := TotalIncome(lines, transactions)
	expenses := TotalExpenses(lines, transactions)
	return Remaining(TotalAvailable(income, rollover), expenses)
}

func TestTotals_EmptyAggregate(t *testing.T) {
	assert.Zero(t, TotalIncome(nil, nil))
	assert.Zero(t, TotalExpenses(nil, nil))
	assert.Zero(t, remainingOf(nil, nil, 0))
}

func TestTotals_EnvelopeWithinBudget(t *testing.T) {
	lines := []BudgetLine{incomeLine("inc", 5000), expenseLine("env", 500)}
	transactions := []Transaction{allocatedExpense("t1", "env", 100)}

	// Spend inside the envelope was already budgeted; it costs nothing extra
	assert.Equal(t, 4500.0, remainingOf(lines, transactions, 0))
}

func TestTotals_EnvelopeOverage(t *testing.T) {
	lines := []BudgetLine{incomeLine("inc", 1000), expenseLine("env", 100)}
	transactions := []Transaction{allocatedExpense("t1", "env", 188)}

	// Only the overage beyond the planned amount reduces the balance
	assert.Equal(t, 812.0, remainingOf(lines, transactions, 0))
}

func TestTotals_FreeTransactionCountsInFull(t *testing.T) {
	lines := []BudgetLine{incomeLine("inc", 5000), expenseLine("env", 500)}
	transactions := []Transaction{
		allocatedExpense("t1", "env", 200),
		{ID: "t2", Name: "one-off", Amount: 50, Kind: KindExpense},
	}

	assert.Equal(t, 4450.0, remainingOf(lines, transactions, 0))
}

func TestTotals_FreeIncomeAdds(t *testing.T) {
	lines := []BudgetLine{incomeLine("inc", 5000), expenseLine("env", 500)}
	transactions := []Transaction{
		{ID: "t1", Name: "refund", Amount: 100, Kind: KindIncome},
	}

	assert.Equal(t, 4600.0, remainingOf(lines, transactions, 0))
}

func TestTotals_AllocatedIncomeNotDoubleCounted(t *testing.T) {
	lines := []BudgetLine{incomeLine("inc", 5000)}
	transactions := []Transaction{
		{ID: "t1", BudgetLineID: "inc", Name: "salary", Amount: 5000, Kind: KindIncome},
	}

	assert.Equal(t, 5000.0, TotalIncome(lines, transactions))
}

func TestTotals_MultiEnvelopeIndependence(t *testing.T) {
	lines := []BudgetLine{
		incomeLine("inc", 5000),
		expenseLine("envA", 500),
		expenseLine("envB", 200),
	}
	transactions := []Transaction{
		allocatedExpense("t1", "envA", 300), // within budget
		allocatedExpense("t2", "envB", 350), // overage of 150
	}

	// envA contributes 500, envB contributes 350; one envelope's overage
	// never affects another's
	assert.Equal(t, 850.0, TotalExpenses(lines, transactions))
	assert.Equal(t, 4150.0, remainingOf(lines, transactions, 0))
}

func TestTotals_SavingLinesUseEnvelopeRule(t *testing.T) {
	lines := []BudgetLine{
		incomeLine("inc", 1000),
		{ID: "sav", Name: "savings", Amount: 200, Kind: KindSaving, Recurrence: RecurrenceFixed},
	}
	transactions := []Transaction{
		{ID: "t1", BudgetLineID: "sav", Name: "transfer", Amount: 250, Kind: KindSaving},
	}

	assert.Equal(t, 250.0, TotalExpenses(lines, transactions))
}

func TestTotals_UnconsumedEnvelopeContributesPlannedAmount(t *testing.T) {
	lines := []BudgetLine{expenseLine("env", 500)}

	assert.Equal(t, 500.0, TotalExpenses(lines, nil))
}

func TestTotals_RolloverAddsToAvailable(t *testing.T) {
	lines := []BudgetLine{incomeLine("inc", 1000)}

	assert.Equal(t, 1250.0, TotalAvailable(TotalIncome(lines, nil), 250))
	assert.Equal(t, 750.0, remainingOf(lines, nil, -250))
}

func TestComputeTotals(t *testing.T) {
	rollover := 100.0
	agg := &DashboardAggregate{
		Budget:       &Budget{ID: "bud-1", Rollover: rollover},
		BudgetLines:  []BudgetLine{incomeLine("inc", 1000), expenseLine("env", 300)},
		Transactions: []Transaction{allocatedExpense("t1", "env", 120)},
	}

	totals := ComputeTotals(agg)

	assert.Equal(t, 1000.0, totals.Income)
	assert.Equal(t, 300.0, totals.Expenses)
	assert.Equal(t, 1100.0, totals.Available)
	assert.Equal(t, 800.0, totals.Remaining)
	assert.Equal(t, rollover, totals.Rollover)

	assert.Zero(t, ComputeTotals(nil))
}
