package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walletadmin/internal/domain/transaction"
)

func transition(kind transaction.Kind) transaction.TransitionRequest {
	return transaction.TransitionRequest{
		IdempotencyKey: "key-1",
		Kind:           kind,
		RecordID:       12,
		From:           transaction.StatusPending,
		To:             transaction.StatusApproved,
		Actor:          "ops",
		RequestedAt:    time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func TestClient_Submit(t *testing.T) {
	tests := []struct {
		name     string
		kind     transaction.Kind
		wantPath string
	}{
		{name: "bank request", kind: transaction.KindRequest, wantPath: "/admin/bank-requests/12/status"},
		{name: "history", kind: transaction.KindHistory, wantPath: "/admin/transaction-histories/12/status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPatch, r.Method)
				assert.Equal(t, tt.wantPath, r.URL.Path)
				assert.Equal(t, "key-1", r.Header.Get(IdempotencyHeader))
				assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, map[string]string{"status": "approved", "actor": "ops"}, body)

				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{"success":true}`))
			}))
			defer server.Close()

			c := NewClient(server.URL+"/", "secret", time.Second)
			require.NoError(t, c.Submit(context.Background(), transition(tt.kind)))
		})
	}
}

func TestClient_Submit_ErrorStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "json error", status: http.StatusUnprocessableEntity, body: `{"error":"invalid_transition","message":"already approved"}`, wantMsg: "invalid_transition already approved"},
		{name: "plain body", status: http.StatusBadGateway, body: "upstream down\n", wantMsg: "upstream down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := NewClient(server.URL, "", time.Second).Submit(context.Background(), transition(transaction.KindRequest))

			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.status, statusErr.StatusCode)
			assert.Equal(t, tt.wantMsg, statusErr.Message)
		})
	}
}

func TestClient_Submit_InvalidKind(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", "", time.Second)
	err := c.Submit(context.Background(), transition("bill"))
	assert.ErrorIs(t, err, transaction.ErrInvalidKind)
}
