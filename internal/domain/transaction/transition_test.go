package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingRepo() *MockRecordRepo {
	return &MockRecordRepo{
		GetByIDFunc: func(_ context.Context, kind Kind, id int64) (*Record, error) {
			if id != 12 {
				return nil, ErrRecordNotFound
			}
			return &Record{ID: 12, Kind: kind, UserID: 7, Type: TypeWithdrawal, Status: StatusPending}, nil
		},
	}
}

func TestTransition_Success(t *testing.T) {
	submitter := &MockSubmitter{}
	notifier := &MockNotifier{}
	deduper := newMemoryDeduper()

	svc := NewTransitionService(pendingRepo(), submitter, deduper, notifier, time.Minute, zerolog.Nop())
	fixed := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	req, err := svc.Transition(context.Background(), TransitionParams{RecordID: 12, Status: StatusApproved, Actor: "ops"})
	require.NoError(t, err)

	assert.Equal(t, KindRequest, req.Kind)
	assert.Equal(t, StatusPending, req.From)
	assert.Equal(t, StatusApproved, req.To)
	assert.Equal(t, int64(7), req.UserID)
	assert.Equal(t, fixed, req.RequestedAt)
	assert.NotEmpty(t, req.IdempotencyKey)

	require.Len(t, submitter.Submitted, 1)
	assert.Equal(t, *req, submitter.Submitted[0])
	require.Len(t, notifier.Notified, 1)
	assert.True(t, deduper.keys["transition:request:12:approved"])
}

func TestTransition_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		params  TransitionParams
		wantErr error
	}{
		{name: "unknown status", params: TransitionParams{RecordID: 12, Status: "done"}, wantErr: ErrInvalidStatus},
		{name: "status is case-sensitive", params: TransitionParams{RecordID: 12, Status: "Approved"}, wantErr: ErrInvalidStatus},
		{name: "unknown kind", params: TransitionParams{Kind: "bill", RecordID: 12, Status: StatusApproved}, wantErr: ErrInvalidKind},
		{name: "missing record", params: TransitionParams{RecordID: 99, Status: StatusApproved}, wantErr: ErrRecordNotFound},
		{name: "same status", params: TransitionParams{RecordID: 12, Status: StatusPending}, wantErr: ErrSameStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			submitter := &MockSubmitter{}
			svc := NewTransitionService(pendingRepo(), submitter, newMemoryDeduper(), nil, 0, zerolog.Nop())

			_, err := svc.Transition(context.Background(), tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, submitter.Submitted)
		})
	}
}

func TestTransition_InvalidRecordID(t *testing.T) {
	svc := NewTransitionService(pendingRepo(), &MockSubmitter{}, nil, nil, 0, zerolog.Nop())
	_, err := svc.Transition(context.Background(), TransitionParams{Status: StatusApproved})
	assert.Error(t, err)
}

func TestTransition_DuplicateClick(t *testing.T) {
	submitter := &MockSubmitter{}
	svc := NewTransitionService(pendingRepo(), submitter, newMemoryDeduper(), nil, 0, zerolog.Nop())
	params := TransitionParams{RecordID: 12, Status: StatusRejected}

	_, err := svc.Transition(context.Background(), params)
	require.NoError(t, err)

	_, err = svc.Transition(context.Background(), params)
	assert.ErrorIs(t, err, ErrDuplicateTransition)
	assert.Len(t, submitter.Submitted, 1)
}

func TestTransition_SubmitFailureReleasesKey(t *testing.T) {
	submitErr := errors.New("backend unavailable")
	submitter := &MockSubmitter{SubmitFunc: func(context.Context, TransitionRequest) error { return submitErr }}
	notifier := &MockNotifier{}
	deduper := newMemoryDeduper()

	svc := NewTransitionService(pendingRepo(), submitter, deduper, notifier, 0, zerolog.Nop())
	_, err := svc.Transition(context.Background(), TransitionParams{RecordID: 12, Status: StatusCodeSent})

	assert.ErrorIs(t, err, submitErr)
	assert.ErrorIs(t, err, ErrSubmitFailed)
	assert.Equal(t, []string{"transition:request:12:code_sent"}, deduper.released)
	assert.Empty(t, notifier.Notified)

	// the admin can retry once the backend recovers
	submitter.SubmitFunc = nil
	_, err = svc.Transition(context.Background(), TransitionParams{RecordID: 12, Status: StatusCodeSent})
	assert.NoError(t, err)
}

func TestTransition_NotifierErrorIsNotFatal(t *testing.T) {
	notifier := &MockNotifier{NotifyTransitionFunc: func(context.Context, TransitionRequest) error {
		return errors.New("queue full")
	}}
	svc := NewTransitionService(pendingRepo(), &MockSubmitter{}, nil, notifier, 0, zerolog.Nop())

	req, err := svc.Transition(context.Background(), TransitionParams{RecordID: 12, Status: StatusApproved})
	require.NoError(t, err)
	assert.NotNil(t, req)
}

func TestTransition_NoOwnerSkipsNotify(t *testing.T) {
	repo := &MockRecordRepo{GetByIDFunc: func(_ context.Context, kind Kind, id int64) (*Record, error) {
		return &Record{ID: id, Kind: kind, Status: StatusPending}, nil
	}}
	notifier := &MockNotifier{}
	svc := NewTransitionService(repo, &MockSubmitter{}, nil, notifier, 0, zerolog.Nop())

	_, err := svc.Transition(context.Background(), TransitionParams{RecordID: 3, Status: StatusApproved})
	require.NoError(t, err)
	assert.Empty(t, notifier.Notified)
}

func TestTransition_IdempotencyKeysDiffer(t *testing.T) {
	submitter := &MockSubmitter{}
	svc := NewTransitionService(pendingRepo(), submitter, nil, nil, 0, zerolog.Nop())

	_, err := svc.Transition(context.Background(), TransitionParams{RecordID: 12, Status: StatusApproved})
	require.NoError(t, err)
	_, err = svc.Transition(context.Background(), TransitionParams{RecordID: 12, Status: StatusApproved})
	require.NoError(t, err)

	require.Len(t, submitter.Submitted, 2)
	assert.NotEqual(t, submitter.Submitted[0].IdempotencyKey, submitter.Submitted[1].IdempotencyKey)
}
