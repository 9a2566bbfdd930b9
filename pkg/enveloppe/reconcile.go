package enveloppe

import "time"

// reconcileAggregate builds the aggregate committed at the end of a CRUD
// mutation: the list changes from this mutation, the authoritative budget
// fields from the by-id fetch, the period-chain fields from the latest
// committed aggregate (the by-id fetch does not carry them), and any
// checked-marker flips that committed concurrently since the pre-mutation
// baseline.
func reconcileAggregate(latest, updated, baseline *DashboardAggregate, serverBudget *Budget) *DashboardAggregate {
	merged := &DashboardAggregate{
		BudgetLines:  mergeLineChecks(updated.BudgetLines, latest.BudgetLines, baseline.BudgetLines),
		Transactions: mergeTransactionChecks(updated.Transactions, latest.Transactions, baseline.Transactions),
	}

	switch {
	case serverBudget != nil:
		budget := *serverBudget
		if latest.Budget != nil {
			budget.Rollover = latest.Budget.Rollover
			budget.PreviousBudgetID = latest.Budget.PreviousBudgetID
		}
		merged.Budget = &budget
	case latest.Budget != nil:
		budget := *latest.Budget
		merged.Budget = &budget
	}

	return merged
}

// mergeLineChecks takes the updated list's fields but keeps, per line id,
// a CheckedAt that the latest aggregate flipped away from the baseline.
// Lines the mutation added or removed fall through to the updated list.
func mergeLineChecks(updated, latest, baseline []BudgetLine) []BudgetLine {
	merged := append([]BudgetLine(nil), updated...)

	baselineChecks := make(map[string]*time.Time, len(baseline))
	for _, line := range baseline {
		baselineChecks[line.ID] = line.CheckedAt
	}
	latestChecks := make(map[string]*time.Time, len(latest))
	latestSeen := make(map[string]bool, len(latest))
	for _, line := range latest {
		latestChecks[line.ID] = line.CheckedAt
		latestSeen[line.ID] = true
	}

	for i := range merged {
		id := merged[i].ID
		if !latestSeen[id] {
			continue
		}
		if before, ok := baselineChecks[id]; ok && !sameCheck(latestChecks[id], before) {
			merged[i].CheckedAt = latestChecks[id]
		}
	}

	return merged
}

// mergeTransactionChecks is mergeLineChecks for the transaction list
func mergeTransactionChecks(updated, latest, baseline []Transaction) []Transaction {
	merged := append([]Transaction(nil), updated...)

	baselineChecks := make(map[string]*time.Time, len(baseline))
	for _, txn := range baseline {
		baselineChecks[txn.ID] = txn.CheckedAt
	}
	latestChecks := make(map[string]*time.Time, len(latest))
	latestSeen := make(map[string]bool, len(latest))
	for _, txn := range latest {
		latestChecks[txn.ID] = txn.CheckedAt
		latestSeen[txn.ID] = true
	}

	for i := range merged {
		id := merged[i].ID
		if !latestSeen[id] {
			continue
		}
		if before, ok := baselineChecks[id]; ok && !sameCheck(latestChecks[id], before) {
			merged[i].CheckedAt = latestChecks[id]
		}
	}

	return merged
}

func sameCheck(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
