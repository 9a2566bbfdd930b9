package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mbellanger/enveloppe-go/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleHTTPError_StatusMapping(t *testing.T) {
	transport := &GraphQLTransport{}

	tests := []struct {
		name         string
		statusCode   int
		responseBody []byte
		wantErr      error
	}{
		{
			name:       "401 maps to not authenticated",
			statusCode: http.StatusUnauthorized,
			wantErr:    types.ErrNotAuthenticated,
		},
		{
			name:       "403 maps to not authenticated",
			statusCode: http.StatusForbidden,
			wantErr:    types.ErrNotAuthenticated,
		},
		{
			name:       "404 maps to not found",
			statusCode: http.StatusNotFound,
			wantErr:    types.ErrNotFound,
		},
		{
			name:       "429 maps to rate limited",
			statusCode: http.StatusTooManyRequests,
			wantErr:    types.ErrRateLimited,
		},
		{
			name:       "504 maps to timeout",
			statusCode: http.StatusGatewayTimeout,
			wantErr:    types.ErrTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := transport.handleHTTPError(tt.statusCode, tt.responseBody)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHandleHTTPError_ServerError_IncludesResponseBody(t *testing.T) {
	transport := &GraphQLTransport{}

	err := transport.handleHTTPError(500, []byte(`{"error": "Internal server error", "message": "database connection failed"}`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "database connection failed")

	apiErr, ok := err.(*types.Error)
	require.True(t, ok)
	assert.Equal(t, "SERVER_ERROR", apiErr.Code)
	assert.ErrorIs(t, err, types.ErrServerError)
}

func TestExecute_RequiresToken(t *testing.T) {
	transport := NewGraphQLTransport(&Options{BaseURL: "https://api.test.com"})

	err := transport.Execute(context.Background(), "query Ping { ping }", nil, nil)

	assert.ErrorIs(t, err, types.ErrNotAuthenticated)
}

func TestExecute_UnmarshalsDataAndSetsHeaders(t *testing.T) {
	var gotAuth, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"budget": {"id": "bud-1"}}}`))
	}))
	defer server.Close()

	transport := NewGraphQLTransport(&Options{BaseURL: server.URL})
	transport.SetAuth("test-token")

	var result struct {
		Budget struct {
			ID string `json:"id"`
		} `json:"budget"`
	}

	err := transport.Execute(context.Background(), "query GetBudget { budget { id } }", nil, &result)

	require.NoError(t, err)
	assert.Equal(t, "bud-1", result.Budget.ID)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestExecute_SurfacesGraphQLErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"errors": [{"message": "budget not found"}]}`))
	}))
	defer server.Close()

	transport := NewGraphQLTransport(&Options{BaseURL: server.URL})
	transport.SetAuth("test-token")

	err := transport.Execute(context.Background(), "query GetBudget { budget { id } }", nil, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "budget not found")
}
