package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walletadmin/internal/domain/notification"
	"walletadmin/internal/domain/transaction"
	"walletadmin/internal/shared/messages"
)

type MockPushSender struct {
	SendToUserFunc func(ctx context.Context, userID int64, title, body, route string, data map[string]string) error
}

func (m *MockPushSender) SendToUser(ctx context.Context, userID int64, title, body, route string, data map[string]string) error {
	if m.SendToUserFunc != nil {
		return m.SendToUserFunc(ctx, userID, title, body, route, data)
	}
	return nil
}

func approvedWithdrawal() transaction.TransitionRequest {
	return transaction.TransitionRequest{
		IdempotencyKey: "key-1",
		Kind:           transaction.KindRequest,
		RecordID:       42,
		UserID:         7,
		Type:           "withdrawal",
		From:           transaction.StatusPending,
		To:             transaction.StatusApproved,
	}
}

func TestNotifyJob_Execute(t *testing.T) {
	var gotUser int64
	var gotTitle, gotBody, gotRoute string
	var gotData map[string]string
	sender := &MockPushSender{
		SendToUserFunc: func(_ context.Context, userID int64, title, body, route string, data map[string]string) error {
			gotUser, gotTitle, gotBody, gotRoute, gotData = userID, title, body, route, data
			return nil
		},
	}

	job := NewNotifyJob(approvedWithdrawal(), sender, messages.Default())
	require.NoError(t, job.Execute(context.Background()))

	assert.Equal(t, int64(7), gotUser)
	assert.Equal(t, "Request approved", gotTitle)
	assert.Equal(t, "Your withdrawal request has been approved.", gotBody)
	assert.Equal(t, notification.RouteTransactions, gotRoute)
	assert.Equal(t, map[string]string{"kind": "request", "record_id": "42", "status": "approved"}, gotData)
	assert.Equal(t, "7", job.UserID())
	assert.Equal(t, "Notify request 42 -> approved", job.Description())
}

func TestNotifyJob_Execute_Errors(t *testing.T) {
	sender := &MockPushSender{
		SendToUserFunc: func(context.Context, int64, string, string, string, map[string]string) error {
			return errors.New("fcm down")
		},
	}

	err := NewNotifyJob(approvedWithdrawal(), sender, messages.Default()).Execute(context.Background())
	assert.ErrorContains(t, err, "fcm down")
}

func TestNotifyJob_Execute_NoTemplateSkips(t *testing.T) {
	called := false
	sender := &MockPushSender{
		SendToUserFunc: func(context.Context, int64, string, string, string, map[string]string) error {
			called = true
			return nil
		},
	}
	req := approvedWithdrawal()
	req.To = "archived"

	require.NoError(t, NewNotifyJob(req, sender, messages.Default()).Execute(context.Background()))
	assert.False(t, called)
}

func TestNotifier_QueuesJob(t *testing.T) {
	pool := NewWorkerPool(1, 0, 1, zerolog.Nop())
	sent := make(chan int64, 1)
	sender := &MockPushSender{
		SendToUserFunc: func(_ context.Context, userID int64, _, _, _ string, _ map[string]string) error {
			sent <- userID
			return nil
		},
	}
	n := NewNotifier(pool, sender, messages.Default())

	require.NoError(t, n.NotifyTransition(context.Background(), approvedWithdrawal()))
	assert.ErrorIs(t, n.NotifyTransition(context.Background(), approvedWithdrawal()), ErrQueueFull)

	pool.Start()
	select {
	case id := <-sent:
		assert.Equal(t, int64(7), id)
	case <-time.After(time.Second):
		t.Fatal("notification was not sent")
	}
	pool.Shutdown(time.Second)
}
