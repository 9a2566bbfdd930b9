package enveloppe

import (
	"context"

	"github.com/pkg/errors"
)

// budgetLineService implements the BudgetLineService interface
type budgetLineService struct {
	client *Client
}

// Create creates a new budget line
func (s *budgetLineService) Create(ctx context.Context, params *CreateBudgetLineParams) (*BudgetLine, error) {
	query := s.client.loadQuery("budget_lines/create.graphql")

	input := map[string]interface{}{
		"budgetId":   params.BudgetID,
		"name":       params.Name,
		"amount":     params.Amount,
		"kind":       params.Kind,
		"recurrence": params.Recurrence,
	}

	if params.TemplateLineID != "" {
		input["templateLineId"] = params.TemplateLineID
	}

	variables := map[string]interface{}{
		"input": input,
	}

	var result struct {
		CreateBudgetLine struct {
			BudgetLine *BudgetLine     `json:"budgetLine"`
			Errors     []mutationError `json:"errors"`
		} `json:"createBudgetLine"`
	}

	if err := s.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return nil, errors.Wrap(err, "failed to create budget line")
	}

	if len(result.CreateBudgetLine.Errors) > 0 {
		return nil, &Error{
			Code:    result.CreateBudgetLine.Errors[0].Code,
			Message: result.CreateBudgetLine.Errors[0].Message,
		}
	}

	if result.CreateBudgetLine.BudgetLine == nil {
		return nil, errors.New("no budget line returned from creation")
	}

	return result.CreateBudgetLine.BudgetLine, nil
}

// Update updates an existing budget line
func (s *budgetLineService) Update(ctx context.Context, lineID string, params *UpdateBudgetLineParams) (*BudgetLine, error) {
	query := s.client.loadQuery("budget_lines/update.graphql")

	input := map[string]interface{}{
		"id": lineID,
	}

	if params.Name != nil {
		input["name"] = *params.Name
	}
	if params.Amount != nil {
		input["amount"] = *params.Amount
	}
	if params.Kind != nil {
		input["kind"] = *params.Kind
	}

	variables := map[string]interface{}{
		"input": input,
	}

	var result struct {
		UpdateBudgetLine struct {
			BudgetLine *BudgetLine     `json:"budgetLine"`
			Errors     []mutationError `json:"errors"`
		} `json:"updateBudgetLine"`
	}

	if err := s.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return nil, errors.Wrap(err, "failed to update budget line")
	}

	if len(result.UpdateBudgetLine.Errors) > 0 {
		return nil, &Error{
			Code:    result.UpdateBudgetLine.Errors[0].Code,
			Message: result.UpdateBudgetLine.Errors[0].Message,
		}
	}

	return result.UpdateBudgetLine.BudgetLine, nil
}

// Delete deletes a budget line
func (s *budgetLineService) Delete(ctx context.Context, lineID string) error {
	query := s.client.loadQuery("budget_lines/delete.graphql")

	variables := map[string]interface{}{
		"id": lineID,
	}

	var result struct {
		DeleteBudgetLine struct {
			Deleted bool            `json:"deleted"`
			Errors  []mutationError `json:"errors"`
		} `json:"deleteBudgetLine"`
	}

	if err := s.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return errors.Wrap(err, "failed to delete budget line")
	}

	if len(result.DeleteBudgetLine.Errors) > 0 {
		return &Error{
			Code:    result.DeleteBudgetLine.Errors[0].Code,
			Message: result.DeleteBudgetLine.Errors[0].Message,
		}
	}

	if !result.DeleteBudgetLine.Deleted {
		return errors.New("budget line was not deleted")
	}

	return nil
}

// ToggleCheck flips the line's checked marker
func (s *budgetLineService) ToggleCheck(ctx context.Context, lineID string) error {
	query := s.client.loadQuery("budget_lines/toggle_check.graphql")

	variables := map[string]interface{}{
		"id": lineID,
	}

	var result struct {
		ToggleBudgetLineCheck struct {
			BudgetLine *BudgetLine     `json:"budgetLine"`
			Errors     []mutationError `json:"errors"`
		} `json:"toggleBudgetLineCheck"`
	}

	if err := s.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return errors.Wrap(err, "failed to toggle budget line check")
	}

	if len(result.ToggleBudgetLineCheck.Errors) > 0 {
		return &Error{
			Code:    result.ToggleBudgetLineCheck.Errors[0].Code,
			Message: result.ToggleBudgetLineCheck.Errors[0].Message,
		}
	}

	return nil
}
