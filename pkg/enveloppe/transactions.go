package enveloppe

import (
	"context"

	"github.com/pkg/errors"
)

// mutationError is the errors[] payload shape shared by all mutations
type mutationError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// transactionService implements the TransactionService interface
type transactionService struct {
	client *Client
}

// Create creates a new transaction
func (s *transactionService) Create(ctx context.Context, params *CreateTransactionParams) (*Transaction, error) {
	query := s.client.loadQuery("transactions/create.graphql")

	input := map[string]interface{}{
		"budgetId":        params.BudgetID,
		"name":            params.Name,
		"amount":          params.Amount,
		"kind":            params.Kind,
		"transactionDate": params.TransactionDate.Format("2006-01-02"),
	}

	if params.BudgetLineID != "" {
		input["budgetLineId"] = params.BudgetLineID
	}
	if params.Category != "" {
		input["category"] = params.Category
	}

	variables := map[string]interface{}{
		"input": input,
	}

	var result struct {
		CreateTransaction struct {
			Transaction *Transaction    `json:"transaction"`
			Errors      []mutationError `json:"errors"`
		} `json:"createTransaction"`
	}

	if err := s.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return nil, errors.Wrap(err, "failed to create transaction")
	}

	if len(result.CreateTransaction.Errors) > 0 {
		return nil, &Error{
			Code:    result.CreateTransaction.Errors[0].Code,
			Message: result.CreateTransaction.Errors[0].Message,
		}
	}

	if result.CreateTransaction.Transaction == nil {
		return nil, errors.New("no transaction returned from creation")
	}

	return result.CreateTransaction.Transaction, nil
}

// Update updates an existing transaction
func (s *transactionService) Update(ctx context.Context, transactionID string, params *UpdateTransactionParams) (*Transaction, error) {
	query := s.client.loadQuery("transactions/update.graphql")

	input := map[string]interface{}{
		"id": transactionID,
	}

	if params.BudgetLineID != nil {
		input["budgetLineId"] = *params.BudgetLineID
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
	if params.TransactionDate != nil {
		input["transactionDate"] = params.TransactionDate.Format("2006-01-02")
	}
	if params.Category != nil {
		input["category"] = *params.Category
	}

	variables := map[string]interface{}{
		"input": input,
	}

	var result struct {
		UpdateTransaction struct {
			Transaction *Transaction    `json:"transaction"`
			Errors      []mutationError `json:"errors"`
		} `json:"updateTransaction"`
	}

	if err := s.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return nil, errors.Wrap(err, "failed to update transaction")
	}

	if len(result.UpdateTransaction.Errors) > 0 {
		return nil, &Error{
			Code:    result.UpdateTransaction.Errors[0].Code,
			Message: result.UpdateTransaction.Errors[0].Message,
		}
	}

	return result.UpdateTransaction.Transaction, nil
}

// Delete deletes a transaction
func (s *transactionService) Delete(ctx context.Context, transactionID string) error {
	query := s.client.loadQuery("transactions/delete.graphql")

	variables := map[string]interface{}{
		"id": transactionID,
	}

	var result struct {
		DeleteTransaction struct {
			Deleted bool            `json:"deleted"`
			Errors  []mutationError `json:"errors"`
		} `json:"deleteTransaction"`
	}

	if err := s.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return errors.Wrap(err, "failed to delete transaction")
	}

	if len(result.DeleteTransaction.Errors) > 0 {
		return &Error{
			Code:    result.DeleteTransaction.Errors[0].Code,
			Message: result.DeleteTransaction.Errors[0].Message,
		}
	}

	if !result.DeleteTransaction.Deleted {
		return errors.New("transaction was not deleted")
	}

	return nil
}

// ToggleCheck flips the transaction's checked marker
func (s *transactionService) ToggleCheck(ctx context.Context, transactionID string) error {
	query := s.client.loadQuery("transactions/toggle_check.graphql")

	variables := map[string]interface{}{
		"id": transactionID,
	}

	var result struct {
		ToggleTransactionCheck struct {
			Transaction *Transaction    `json:"transaction"`
			Errors      []mutationError `json:"errors"`
		} `json:"toggleTransactionCheck"`
	}

	if err := s.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return errors.Wrap(err, "failed to toggle transaction check")
	}

	if len(result.ToggleTransactionCheck.Errors) > 0 {
		return &Error{
			Code:    result.ToggleTransactionCheck.Errors[0].Code,
			Message: result.ToggleTransactionCheck.Errors[0].Message,
		}
	}

	return nil
}
