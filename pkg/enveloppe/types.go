package enveloppe

import (
	"time"
)

// Kind classifies a budget line or transaction flow direction.
// Amounts are always positive; direction is carried by the kind.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
	KindSaving  Kind = "saving"
)

// Recurrence describes how a budget line repeats across periods
type Recurrence string

const (
	RecurrenceFixed  Recurrence = "fixed"
	RecurrenceOneOff Recurrence = "one_off"
)

// Budget represents one budget period instance. It is owned by the server:
// EndingBalance and Rollover are computed there and treated as authoritative.
type Budget struct {
	ID               string    `json:"id"`
	Month            int       `json:"month"`
	Year             int       `json:"year"`
	Description      string    `json:"description"`
	TemplateID       string    `json:"templateId,omitempty"`
	EndingBalance    *float64  `json:"endingBalance"`
	Rollover         float64   `json:"rollover"`
	PreviousBudgetID string    `json:"previousBudgetId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Period returns the budget's period
func (b *Budget) Period() BudgetPeriod {
	return BudgetPeriod{Month: b.Month, Year: b.Year}
}

// BudgetLine is a planned income/expense/saving amount within a budget.
// CheckedAt is a user-toggleable "done" marker, not a deletion.
type BudgetLine struct {
	ID                 string     `json:"id"`
	BudgetID           string     `json:"budgetId"`
	TemplateLineID     string     `json:"templateLineId,omitempty"`
	Name               string     `json:"name"`
	Amount             float64    `json:"amount"`
	Kind               Kind       `json:"kind"`
	Recurrence         Recurrence `json:"recurrence"`
	IsManuallyAdjusted bool       `json:"isManuallyAdjusted"`
	CheckedAt          *time.Time `json:"checkedAt"`

	// Synthetic rollover rows only. Never sent back to the server.
	IsRollover             bool   `json:"isRollover,omitempty"`
	RolloverSourceBudgetID string `json:"rolloverSourceBudgetId,omitempty"`
}

// Transaction is an actual recorded flow of money. BudgetLineID is the
// envelope allocation: empty means "free", set means the amount counts
// against that planned line's envelope.
type Transaction struct {
	ID              string     `json:"id"`
	BudgetID        string     `json:"budgetId"`
	BudgetLineID    string     `json:"budgetLineId,omitempty"`
	Name            string     `json:"name"`
	Amount          float64    `json:"amount"`
	Kind            Kind       `json:"kind"`
	TransactionDate Date       `json:"transactionDate"`
	Category        string     `json:"category,omitempty"`
	CheckedAt       *time.Time `json:"checkedAt"`
}

// BudgetDetails is the full detail bundle for one budget
type BudgetDetails struct {
	Budget       *Budget       `json:"budget"`
	BudgetLines  []BudgetLine  `json:"budgetLines"`
	Transactions []Transaction `json:"transactions"`
}

// CreateTransactionParams are the parameters for creating a transaction
type CreateTransactionParams struct {
	BudgetID        string
	BudgetLineID    string
	Name            string
	Amount          float64
	Kind            Kind
	TransactionDate time.Time
	Category        string
}

// UpdateTransactionParams are the parameters for updating a transaction.
// Nil fields are left unchanged.
type UpdateTransactionParams struct {
	BudgetLineID    *string
	Name            *string
	Amount          *float64
	Kind            *Kind
	TransactionDate *time.Time
	Category        *string
}

// CreateBudgetLineParams are the parameters for creating a budget line
type CreateBudgetLineParams struct {
	BudgetID       string
	TemplateLineID string
	Name           string
	Amount         float64
	Kind           Kind
	Recurrence     Recurrence
}

// UpdateBudgetLineParams are the parameters for updating a budget line.
// Nil fields are left unchanged.
type UpdateBudgetLineParams struct {
	Name   *string
	Amount *float64
	Kind   *Kind
}
