package enveloppe

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mbellanger/enveloppe-go/internal/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTransport mocks the GraphQL transport
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Execute(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error {
	args := m.Called(ctx, query, variables, result)

	// If mock provides result data, unmarshal it
	if args.Get(0) != nil {
		resultJSON := args.Get(0).(string)
		if err := json.Unmarshal([]byte(resultJSON), result); err != nil {
			return err
		}
	}

	return args.Error(1)
}

func (m *MockTransport) SetAuth(token string) {
	m.Called(token)
}

func newTestClient(transport *MockTransport) *Client {
	return &Client{
		transport:   transport,
		queryLoader: graphql.NewQueryLoader(),
		options:     &ClientOptions{},
		baseURL:     "https://api.test.com",
	}
}

func TestBudgetService_ForPeriod(t *testing.T) {
	mockTransport := new(MockTransport)
	service := &budgetService{client: newTestClient(mockTransport)}

	mockResponse := `{
		"budgetForPeriod": {
			"id": "budget-1",
			"month": 9,
			"year": 2026,
			"description": "September",
			"endingBalance": 430.50,
			"rollover": 120.00,
			"previousBudgetId": "budget-0"
		}
	}`

	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.MatchedBy(func(vars map[string]interface{}) bool {
			return vars["month"] == 9 && vars["year"] == 2026
		}),
		mock.Anything,
	).Return(mockResponse, nil)

	budget, err := service.ForPeriod(context.Background(), BudgetPeriod{Month: 9, Year: 2026})

	require.NoError(t, err)
	require.NotNil(t, budget)
	assert.Equal(t, "budget-1", budget.ID)
	assert.Equal(t, 9, budget.Month)
	require.NotNil(t, budget.EndingBalance)
	assert.Equal(t, 430.50, *budget.EndingBalance)
	assert.Equal(t, 120.00, budget.Rollover)
	mockTransport.AssertExpectations(t)
}

func TestBudgetService_ForPeriod_NoBudget(t *testing.T) {
	mockTransport := new(MockTransport)
	service := &budgetService{client: newTestClient(mockTransport)}

	// A period without a budget is a null payload, not an error
	mockTransport.On("Execute", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(`{"budgetForPeriod": null}`, nil)

	budget, err := service.ForPeriod(context.Background(), BudgetPeriod{Month: 1, Year: 2020})

	assert.NoError(t, err)
	assert.Nil(t, budget)
}

func TestBudgetService_Get_NotFound(t *testing.T) {
	mockTransport := new(MockTransport)
	service := &budgetService{client: newTestClient(mockTransport)}

	mockTransport.On("Execute", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(`{"budget": null}`, nil)

	budget, err := service.Get(context.Background(), "nope")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, budget)
}

func TestBudgetService_List(t *testing.T) {
	mockTransport := new(MockTransport)
	service := &budgetService{client: newTestClient(mockTransport)}

	mockResponse := `{
		"budgets": [
			{"id": "budget-1", "month": 8, "year": 2026},
			{"id": "budget-2", "month": 9, "year": 2026}
		]
	}`

	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.MatchedBy(func(vars map[string]interface{}) bool {
			return vars["year"] == 2026
		}),
		mock.Anything,
	).Return(mockResponse, nil)

	budgets, err := service.List(context.Background(), 2026)

	require.NoError(t, err)
	require.Len(t, budgets, 2)
	assert.Equal(t, "budget-2", budgets[1].ID)
	mockTransport.AssertExpectations(t)
}

func TestBudgetService_Details(t *testing.T) {
	mockTransport := new(MockTransport)
	service := &budgetService{client: newTestClient(mockTransport)}

	mockResponse := `{
		"budgetDetails": {
			"budget": {"id": "budget-1", "month": 9, "year": 2026},
			"budgetLines": [
				{
					"id": "line-1",
					"budgetId": "budget-1",
					"name": "rent",
					"amount": 900,
					"kind": "expense",
					"recurrence": "fixed",
					"checkedAt": "2026-09-01T10:00:00Z"
				}
			],
			"transactions": [
				{
					"id": "txn-1",
					"budgetId": "budget-1",
					"budgetLineId": "line-1",
					"name": "landlord",
					"amount": 900,
					"kind": "expense",
					"transactionDate": "2026-09-01"
				}
			]
		}
	}`

	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.MatchedBy(func(vars map[string]interface{}) bool {
			return vars["budgetId"] == "budget-1"
		}),
		mock.Anything,
	).Return(mockResponse, nil)

	details, err := service.Details(context.Background(), "budget-1")

	require.NoError(t, err)
	require.NotNil(t, details.Budget)
	require.Len(t, details.BudgetLines, 1)
	assert.NotNil(t, details.BudgetLines[0].CheckedAt)
	require.Len(t, details.Transactions, 1)
	assert.Equal(t, "2026-09-01", details.Transactions[0].TransactionDate.String())
	mockTransport.AssertExpectations(t)
}

func TestBudgetService_Details_NotFound(t *testing.T) {
	mockTransport := new(MockTransport)
	service := &budgetService{client: newTestClient(mockTransport)}

	mockTransport.On("Execute", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(`{"budgetDetails": null}`, nil)

	details, err := service.Details(context.Background(), "nope")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, details)
}
