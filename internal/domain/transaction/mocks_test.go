package transaction

import (
	"context"
	"time"
)

type MockRecordRepo struct {
	GetByIDFunc       func(ctx context.Context, kind Kind, id int64) (*Record, error)
	ListFunc          func(ctx context.Context, params ListParams) ([]*Record, error)
	CountByStatusFunc func(ctx context.Context, kind Kind, status string) (int, error)
}

func (m *MockRecordRepo) GetByID(ctx context.Context, kind Kind, id int64) (*Record, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, kind, id)
	}
	return nil, ErrRecordNotFound
}

func (m *MockRecordRepo) List(ctx context.Context, params ListParams) ([]*Record, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockRecordRepo) CountByStatus(ctx context.Context, kind Kind, status string) (int, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, kind, status)
	}
	return 0, nil
}

type MockSubmitter struct {
	SubmitFunc func(ctx context.Context, req TransitionRequest) error
	Submitted  []TransitionRequest
}

func (m *MockSubmitter) Submit(ctx context.Context, req TransitionRequest) error {
	m.Submitted = append(m.Submitted, req)
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, req)
	}
	return nil
}

// memoryDeduper holds keys forever; enough for a single test.
type memoryDeduper struct {
	keys     map[string]bool
	released []string
}

func newMemoryDeduper() *memoryDeduper {
	return &memoryDeduper{keys: make(map[string]bool)}
}

func (d *memoryDeduper) Acquire(_ context.Context, key string, _ time.Duration) (bool, error) {
	if d.keys[key] {
		return false, nil
	}
	d.keys[key] = true
	return true, nil
}

func (d *memoryDeduper) Release(_ context.Context, key string) error {
	delete(d.keys, key)
	d.released = append(d.released, key)
	return nil
}

type MockNotifier struct {
	NotifyTransitionFunc func(ctx context.Context, req TransitionRequest) error
	Notified             []TransitionRequest
}

func (m *MockNotifier) NotifyTransition(ctx context.Context, req TransitionRequest) error {
	m.Notified = append(m.Notified, req)
	if m.NotifyTransitionFunc != nil {
		return m.NotifyTransitionFunc(ctx, req)
	}
	return nil
}
