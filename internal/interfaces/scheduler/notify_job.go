package scheduler

import (
	"context"
	"fmt"
	"strconv"

	"walletadmin/internal/domain/notification"
	"walletadmin/internal/domain/transaction"
	"walletadmin/internal/shared/messages"
)

// PushSender is the part of notification.Service the notify job needs
type PushSender interface {
	SendToUser(ctx context.Context, userID int64, title, body, route string, data map[string]string) error
}

// NotifyJob pushes the status change of one record to its owner
type NotifyJob struct {
	req      transaction.TransitionRequest
	sender   PushSender
	messages *messages.Messages
}

func NewNotifyJob(req transaction.TransitionRequest, sender PushSender, msgs *messages.Messages) *NotifyJob {
	return &NotifyJob{req: req, sender: sender, messages: msgs}
}

func (j *NotifyJob) Execute(ctx context.Context) error {
	text, ok := j.messages.ForTransition(string(j.req.Kind), j.req.To, j.req.Type)
	if !ok {
		return nil
	}

	data := map[string]string{
		"kind":      string(j.req.Kind),
		"record_id": strconv.FormatInt(j.req.RecordID, 10),
		"status":    j.req.To,
	}
	if err := j.sender.SendToUser(ctx, j.req.UserID, text.Title, text.Body, notification.RouteTransactions, data); err != nil {
		return fmt.Errorf("notify transition %s: %w", j.req.IdempotencyKey, err)
	}
	return nil
}

func (j *NotifyJob) UserID() string {
	return strconv.FormatInt(j.req.UserID, 10)
}

func (j *NotifyJob) Description() string {
	return fmt.Sprintf("Notify %s %d -> %s", j.req.Kind, j.req.RecordID, j.req.To)
}

// Notifier queues a NotifyJob for every handed-off transition so the HTTP
// request never waits on the push provider.
type Notifier struct {
	pool     *WorkerPool
	sender   PushSender
	messages *messages.Messages
}

func NewNotifier(pool *WorkerPool, sender PushSender, msgs *messages.Messages) *Notifier {
	return &Notifier{pool: pool, sender: sender, messages: msgs}
}

// NotifyTransition implements transaction.Notifier
func (n *Notifier) NotifyTransition(_ context.Context, req transaction.TransitionRequest) error {
	if err := n.pool.Submit(NewNotifyJob(req, n.sender, n.messages)); err != nil {
		return fmt.Errorf("queue notification: %w", err)
	}
	return nil
}

var _ transaction.Notifier = (*Notifier)(nil)
