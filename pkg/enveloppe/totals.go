package enveloppe

// Totals are the derived display numbers for one dashboard aggregate.
// They are recomputed from the aggregate on every read, never stored.
type Totals struct {
	Income    float64
	Expenses  float64
	Available float64
	Remaining float64
	Rollover  float64
}

// TotalIncome sums income budget lines and free income transactions.
// Income transactions allocated to a line are assumed already represented by
// that line and are not double-counted.
func TotalIncome(lines []BudgetLine, transactions []Transaction) float64 {
	var total float64

	for _, line := range lines {
		if line.Kind == KindIncome {
			total += line.Amount
		}
	}

	for _, txn := range transactions {
		if txn.Kind == KindIncome && txn.BudgetLineID == "" {
			total += txn.Amount
		}
	}

	return total
}

// TotalExpenses computes total spend under envelope allocation. Each
// expense/saving line contributes its effective consumption
// max(planned, allocated): an envelope absorbs allocated spend up to its
// planned amount, so only the overage beyond it reduces the remaining
// balance. Free expense/saving transactions count in full.
func TotalExpenses(lines []BudgetLine, transactions []Transaction) float64 {
	var total float64

	for _, line := range lines {
		if line.Kind != KindExpense && line.Kind != KindSaving {
			continue
		}
		total += EnvelopeConsumption(line, transactions)
	}

	for _, txn := range transactions {
		if (txn.Kind == KindExpense || txn.Kind == KindSaving) && txn.BudgetLineID == "" {
			total += txn.Amount
		}
	}

	return total
}

// EnvelopeConsumption returns a line's effective consumption: the larger of
// its planned amount and the sum of transactions allocated to it.
func EnvelopeConsumption(line BudgetLine, transactions []Transaction) float64 {
	var allocated float64
	for _, txn := range transactions {
		if txn.BudgetLineID == line.ID {
			allocated += txn.Amount
		}
	}

	if allocated > line.Amount {
		return allocated
	}
	return line.Amount
}

// TotalAvailable is the income plus the rollover carried in from the
// previous period
func TotalAvailable(totalIncome, rollover float64) float64 {
	return totalIncome + rollover
}

// Remaining is what is left after expenses. May be negative; no clamping.
func Remaining(totalAvailable, totalExpenses float64) float64 {
	return totalAvailable - totalExpenses
}

// ComputeTotals derives all display numbers from an aggregate
func ComputeTotals(agg *DashboardAggregate) Totals {
	if agg == nil {
		return Totals{}
	}

	var rollover float64
	if agg.Budget != nil {
		rollover = agg.Budget.Rollover
	}

	income := TotalIncome(agg.BudgetLines, agg.Transactions)
	expenses := TotalExpenses(agg.BudgetLines, agg.Transactions)
	available := TotalAvailable(income, rollover)

	return Totals{
		Income:    income,
		Expenses:  expenses,
		Available: available,
		Remaining: Remaining(available, expenses),
		Rollover:  rollover,
	}
}
