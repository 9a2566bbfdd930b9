package enveloppe

import (
	"context"
)

// BudgetService handles budget read operations
type BudgetService interface {
	// ForPeriod retrieves the budget for a period. Returns (nil, nil) when
	// no budget exists for the period; absence is a valid state, not an error.
	ForPeriod(ctx context.Context, period BudgetPeriod) (*Budget, error)

	// Get retrieves a single budget by ID. The returned record carries the
	// authoritative EndingBalance but not the period-chain fields
	// (Rollover, PreviousBudgetID).
	Get(ctx context.Context, budgetID string) (*Budget, error)

	// List retrieves all budgets for a year
	List(ctx context.Context, year int) ([]*Budget, error)

	// Details retrieves the full detail bundle for a budget
	Details(ctx context.Context, budgetID string) (*BudgetDetails, error)
}

// TransactionService handles transaction mutations
type TransactionService interface {
	// Create creates a new transaction
	Create(ctx context.Context, params *CreateTransactionParams) (*Transaction, error)

	// Update updates an existing transaction
	Update(ctx context.Context, transactionID string, params *UpdateTransactionParams) (*Transaction, error)

	// Delete deletes a transaction
	Delete(ctx context.Context, transactionID string) error

	// ToggleCheck flips the transaction's checked marker
	ToggleCheck(ctx context.Context, transactionID string) error
}

// BudgetLineService handles budget line mutations
type BudgetLineService interface {
	// Create creates a new budget line
	Create(ctx context.Context, params *CreateBudgetLineParams) (*BudgetLine, error)

	// Update updates an existing budget line
	Update(ctx context.Context, lineID string, params *UpdateBudgetLineParams) (*BudgetLine, error)

	// Delete deletes a budget line
	Delete(ctx context.Context, lineID string) error

	// ToggleCheck flips the line's checked marker
	ToggleCheck(ctx context.Context, lineID string) error
}
