package enveloppe

import (
	"context"

	"github.com/pkg/errors"
)

// budgetService implements the BudgetService interface
type budgetService struct {
	client *Client
}

// ForPeriod retrieves the budget for a period. A missing budget is not an
// error: the result is (nil, nil).
func (s *budgetService) ForPeriod(ctx context.Context, period BudgetPeriod) (*Budget, error) {
	query := s.client.loadQuery("budgets/get_for_period.graphql")

	variables := map[string]interface{}{
		"month": period.Month,
		"year":  period.Year,
	}

	var result struct {
		BudgetForPeriod *Budget `json:"budgetForPeriod"`
	}

	if err := s.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get budget for period")
	}

	return result.BudgetForPeriod, nil
}

// Get retrieves a single budget by ID
func (s *budgetService) Get(ctx context.Context, budgetID string) (*Budget, error) {
	query := s.client.loadQuery("budgets/get_by_id.graphql")

	variables := map[string]interface{}{
		"id": budgetID,
	}

	var result struct {
		Budget *Budget `json:"budget"`
	}

	if err := s.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get budget")
	}

	if result.Budget == nil {
		return nil, ErrNotFound
	}

	return result.Budget, nil
}

// List retrieves all budgets for a year
func (s *budgetService) List(ctx context.Context, year int) ([]*Budget, error) {
	query := s.client.loadQuery("budgets/list.graphql")

	variables := map[string]interface{}{
		"year": year,
	}

	var result struct {
		Budgets []*Budget `json:"budgets"`
	}

	if err := s.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return nil, errors.Wrap(err, "failed to list budgets")
	}

	return result.Budgets, nil
}

// Details retrieves the full detail bundle for a budget
func (s *budgetService) Details(ctx context.Context, budgetID string) (*BudgetDetails, error) {
	query := s.client.loadQuery("budgets/details.graphql")

	variables := map[string]interface{}{
		"budgetId": budgetID,
	}

	var result struct {
		BudgetDetails *BudgetDetails `json:"budgetDetails"`
	}

	if err := s.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get budget details")
	}

	if result.BudgetDetails == nil {
		return nil, ErrNotFound
	}

	return result.BudgetDetails, nil
}
