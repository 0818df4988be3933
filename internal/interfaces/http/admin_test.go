package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walletadmin/internal/domain/activity"
	"walletadmin/internal/domain/overview"
	"walletadmin/internal/domain/transaction"
	"walletadmin/internal/domain/user"
)

// MockOverview implements Overview for testing
type MockOverview struct {
	ListRequestsFunc     func(ctx context.Context, c activity.Criteria) ([]activity.DateGroup[overview.RecordView], error)
	ListTransactionsFunc func(ctx context.Context, userID int64, c activity.Criteria) ([]activity.DateGroup[overview.RecordView], error)
	ListUsersFunc        func(ctx context.Context, c activity.Criteria) ([]overview.UserRow, error)
	GetUserFunc          func(ctx context.Context, id int64) (*overview.UserDetail, error)
	ActivityFunc         func(ctx context.Context, userID int64) ([]activity.DateGroup[overview.ActivityItem], error)
	PendingBacklogFunc   func(ctx context.Context) (overview.Backlog, error)
}

func (m *MockOverview) ListRequests(ctx context.Context, c activity.Criteria) ([]activity.DateGroup[overview.RecordView], error) {
	if m.ListRequestsFunc != nil {
		return m.ListRequestsFunc(ctx, c)
	}
	return nil, nil
}

func (m *MockOverview) ListTransactions(ctx context.Context, userID int64, c activity.Criteria) ([]activity.DateGroup[overview.RecordView], error) {
	if m.ListTransactionsFunc != nil {
		return m.ListTransactionsFunc(ctx, userID, c)
	}
	return nil, nil
}

func (m *MockOverview) ListUsers(ctx context.Context, c activity.Criteria) ([]overview.UserRow, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, c)
	}
	return nil, nil
}

func (m *MockOverview) GetUser(ctx context.Context, id int64) (*overview.UserDetail, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	return nil, user.ErrUserNotFound
}

func (m *MockOverview) Activity(ctx context.Context, userID int64) ([]activity.DateGroup[overview.ActivityItem], error) {
	if m.ActivityFunc != nil {
		return m.ActivityFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockOverview) PendingBacklog(ctx context.Context) (overview.Backlog, error) {
	if m.PendingBacklogFunc != nil {
		return m.PendingBacklogFunc(ctx)
	}
	return overview.Backlog{}, nil
}

// MockTransitioner implements Transitioner for testing
type MockTransitioner struct {
	TransitionFunc func(ctx context.Context, params transaction.TransitionParams) (*transaction.TransitionRequest, error)
}

func (m *MockTransitioner) Transition(ctx context.Context, params transaction.TransitionParams) (*transaction.TransitionRequest, error) {
	if m.TransitionFunc != nil {
		return m.TransitionFunc(ctx, params)
	}
	return &transaction.TransitionRequest{Kind: params.Kind, RecordID: params.RecordID, To: params.Status}, nil
}

func newTestRouter(ov Overview, tr Transitioner) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", HandleHealth)
	NewAdminHandler(ov, tr).Mount(r)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandleHealth(t *testing.T) {
	rr := do(t, newTestRouter(&MockOverview{}, &MockTransitioner{}), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestHandleListRequests_PassesCriteria(t *testing.T) {
	var got activity.Criteria
	ov := &MockOverview{
		ListRequestsFunc: func(_ context.Context, c activity.Criteria) ([]activity.DateGroup[overview.RecordView], error) {
			got = c
			return []activity.DateGroup[overview.RecordView]{
				{Label: activity.LabelToday, Items: []overview.RecordView{{ID: 1, Status: "pending", Amount: "$10.00"}}},
			}, nil
		},
	}

	rr := do(t, newTestRouter(ov, &MockTransitioner{}), http.MethodGet, "/api/admin/requests?type=deposit&status=pending&search=ada", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, activity.Criteria{Type: "deposit", Status: "pending", Search: "ada"}, got)

	var groups []activity.DateGroup[overview.RecordView]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, activity.LabelToday, groups[0].Label)
	assert.Equal(t, "$10.00", groups[0].Items[0].Amount)
}

func TestHandleListTransactions_UserID(t *testing.T) {
	var gotUser int64
	ov := &MockOverview{
		ListTransactionsFunc: func(_ context.Context, userID int64, _ activity.Criteria) ([]activity.DateGroup[overview.RecordView], error) {
			gotUser = userID
			return []activity.DateGroup[overview.RecordView]{}, nil
		},
	}
	h := newTestRouter(ov, &MockTransitioner{})

	rr := do(t, h, http.MethodGet, "/api/admin/transactions?user_id=9", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(9), gotUser)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = do(t, h, http.MethodGet, "/api/admin/transactions", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(0), gotUser)

	rr = do(t, h, http.MethodGet, "/api/admin/transactions?user_id=abc", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleGetUser(t *testing.T) {
	ov := &MockOverview{
		GetUserFunc: func(_ context.Context, id int64) (*overview.UserDetail, error) {
			if id != 5 {
				return nil, user.ErrUserNotFound
			}
			return &overview.UserDetail{User: &user.User{ID: 5, Name: "Ada"}, Status: "Active", AccountLabel: "First Union ...4521"}, nil
		},
	}
	h := newTestRouter(ov, &MockTransitioner{})

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{name: "found", path: "/api/admin/users/5", wantStatus: http.StatusOK},
		{name: "missing", path: "/api/admin/users/6", wantStatus: http.StatusNotFound},
		{name: "bad id", path: "/api/admin/users/x", wantStatus: http.StatusBadRequest},
		{name: "zero id", path: "/api/admin/users/0", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}

	rr := do(t, h, http.MethodGet, "/api/admin/users/5", "")
	assert.Contains(t, rr.Body.String(), `"primary_account_label":"First Union ...4521"`)
}

func TestHandleUserActivity(t *testing.T) {
	ov := &MockOverview{
		ActivityFunc: func(_ context.Context, userID int64) ([]activity.DateGroup[overview.ActivityItem], error) {
			return []activity.DateGroup[overview.ActivityItem]{
				{Label: activity.LabelYesterday, Items: []overview.ActivityItem{{ID: userID, Title: "Deposit"}}},
			}, nil
		},
	}

	rr := do(t, newTestRouter(ov, &MockTransitioner{}), http.MethodGet, "/api/admin/users/3/activity", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"label":"Yesterday"`)
}

func TestHandleBacklog(t *testing.T) {
	ov := &MockOverview{
		PendingBacklogFunc: func(context.Context) (overview.Backlog, error) {
			return overview.Backlog{PendingRequests: 2, PendingHistory: 1}, nil
		},
	}

	rr := do(t, newTestRouter(ov, &MockTransitioner{}), http.MethodGet, "/api/admin/backlog", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"pending_requests":2,"pending_history":1}`, rr.Body.String())
}

func TestHandleRequestStatus(t *testing.T) {
	requestedAt := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	var got transaction.TransitionParams
	tr := &MockTransitioner{
		TransitionFunc: func(_ context.Context, p transaction.TransitionParams) (*transaction.TransitionRequest, error) {
			got = p
			return &transaction.TransitionRequest{
				IdempotencyKey: "idem-1",
				Kind:           p.Kind,
				RecordID:       p.RecordID,
				From:           transaction.StatusPending,
				To:             p.Status,
				RequestedAt:    requestedAt,
			}, nil
		},
	}

	rr := do(t, newTestRouter(&MockOverview{}, tr), http.MethodPost, "/api/admin/requests/12/status", `{"status":"approved","actor":"ops@wallet"}`)

	require.Equal(t, http.StatusAccepted, rr.Code)
	assert.Equal(t, transaction.TransitionParams{Kind: transaction.KindRequest, RecordID: 12, Status: "approved", Actor: "ops@wallet"}, got)

	var body transaction.TransitionRequest
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "idem-1", body.IdempotencyKey)
	assert.Equal(t, "approved", body.To)
	assert.Equal(t, int64(12), body.RecordID)
}

func TestHandleTransactionStatus_UsesHistoryKind(t *testing.T) {
	var got transaction.Kind
	tr := &MockTransitioner{
		TransitionFunc: func(_ context.Context, p transaction.TransitionParams) (*transaction.TransitionRequest, error) {
			got = p.Kind
			return &transaction.TransitionRequest{Kind: p.Kind}, nil
		},
	}

	rr := do(t, newTestRouter(&MockOverview{}, tr), http.MethodPost, "/api/admin/transactions/4/status", `{"status":"rejected"}`)

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Equal(t, transaction.KindHistory, got)
}

func TestHandleRequestStatus_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		err        error
		wantStatus int
		wantError  string
	}{
		{name: "bad id", path: "/api/admin/requests/nope/status", body: `{"status":"approved"}`, wantStatus: http.StatusBadRequest, wantError: "invalid record id"},
		{name: "bad body", path: "/api/admin/requests/1/status", body: `{`, wantStatus: http.StatusBadRequest, wantError: "invalid request body"},
		{name: "invalid status", path: "/api/admin/requests/1/status", body: `{"status":"frozen"}`, err: transaction.ErrInvalidStatus, wantStatus: http.StatusBadRequest},
		{name: "not found", path: "/api/admin/requests/1/status", body: `{"status":"approved"}`, err: transaction.ErrRecordNotFound, wantStatus: http.StatusNotFound},
		{name: "same status", path: "/api/admin/requests/1/status", body: `{"status":"pending"}`, err: transaction.ErrSameStatus, wantStatus: http.StatusConflict},
		{name: "duplicate", path: "/api/admin/requests/1/status", body: `{"status":"approved"}`, err: transaction.ErrDuplicateTransition, wantStatus: http.StatusConflict},
		{name: "backend down", path: "/api/admin/requests/1/status", body: `{"status":"approved"}`, err: fmt.Errorf("%w: %w", transaction.ErrSubmitFailed, errors.New("502 from backend")), wantStatus: http.StatusBadGateway},
		{name: "unexpected", path: "/api/admin/requests/1/status", body: `{"status":"approved"}`, err: errors.New("db exploded"), wantStatus: http.StatusInternalServerError, wantError: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &MockTransitioner{
				TransitionFunc: func(context.Context, transaction.TransitionParams) (*transaction.TransitionRequest, error) {
					return nil, tt.err
				},
			}

			rr := do(t, newTestRouter(&MockOverview{}, tr), http.MethodPost, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, rr.Code)
			var body errorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body.Error)
			} else {
				assert.Equal(t, tt.err.Error(), body.Error)
			}
		})
	}
}

func TestHandleListUsers_Error(t *testing.T) {
	ov := &MockOverview{
		ListUsersFunc: func(context.Context, activity.Criteria) ([]overview.UserRow, error) {
			return nil, errors.New("connection refused")
		},
	}

	rr := do(t, newTestRouter(ov, &MockTransitioner{}), http.MethodGet, "/api/admin/users?status=Active", "")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "connection refused")
}
