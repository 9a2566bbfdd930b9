package enveloppe

// ProjectRolloverLine synthesizes the display-only planned line representing
// the balance carried over from the previous period. Returns nil when there
// is nothing to display. The synthetic line is never sent to the server and
// must be excluded from any payload that creates or updates real lines;
// unlike real lines its amount keeps the rollover's sign, so a deficit shows
// as a negative row.
func ProjectRolloverLine(rolloverAmount float64, budgetID string, period BudgetPeriod, previousBudgetID string) *BudgetLine {
	if rolloverAmount == 0 {
		return nil
	}

	return &BudgetLine{
		ID:                     "rollover-" + budgetID,
		BudgetID:               budgetID,
		Name:                   "Balance from " + period.Previous().String(),
		Amount:                 rolloverAmount,
		Kind:                   KindIncome,
		Recurrence:             RecurrenceOneOff,
		IsRollover:             true,
		RolloverSourceBudgetID: previousBudgetID,
	}
}

// DisplayLines returns the list the UI renders: the aggregate's real lines
// with the synthetic rollover line prepended when the budget carries one.
func DisplayLines(agg *DashboardAggregate) []BudgetLine {
	if agg == nil {
		return nil
	}

	if agg.Budget == nil {
		return agg.BudgetLines
	}

	rollover := ProjectRolloverLine(agg.Budget.Rollover, agg.Budget.ID, agg.Budget.Period(), agg.Budget.PreviousBudgetID)
	if rollover == nil {
		return agg.BudgetLines
	}

	lines := make([]BudgetLine, 0, len(agg.BudgetLines)+1)
	lines = append(lines, *rollover)
	lines = append(lines, agg.BudgetLines...)
	return lines
}
