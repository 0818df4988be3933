package transaction

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultDedupeWindow is how long a submitted transition blocks an identical one
const DefaultDedupeWindow = 30 * time.Second

// TransitionParams is an admin's request to move a record to a new status
type TransitionParams struct {
	Kind     Kind
	RecordID int64
	Status   string
	Actor    string
}

// Validate checks the record id, kind and target status.
func (p TransitionParams) Validate() error {
	if p.RecordID <= 0 {
		return errors.New("valid record ID is required")
	}
	if !IsValidKind(p.Kind) {
		return ErrInvalidKind
	}
	if !IsValidStatus(p.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// TransitionRequest is the prepared status change handed to the backend.
// IdempotencyKey is unique per submission.
type TransitionRequest struct {
	IdempotencyKey string    `json:"idempotency_key"`
	Kind           Kind      `json:"kind"`
	RecordID       int64     `json:"record_id"`
	UserID         int64     `json:"user_id"`
	Type           string    `json:"type"`
	From           string    `json:"from_status"`
	To             string    `json:"status"`
	Actor          string    `json:"actor,omitempty"`
	RequestedAt    time.Time `json:"requested_at"`
}

// DedupeKey identifies identical transitions regardless of who submitted them
func (r TransitionRequest) DedupeKey() string {
	return DedupeKey(r.Kind, r.RecordID, r.To)
}

func DedupeKey(kind Kind, recordID int64, status string) string {
	return "transition:" + string(kind) + ":" + strconv.FormatInt(recordID, 10) + ":" + status
}

// Submitter hands a transition to the system that owns the record
type Submitter interface {
	Submit(ctx context.Context, req TransitionRequest) error
}

// Deduper guards against double submission. Acquire reports false when the
// key is already held.
type Deduper interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// Notifier informs the record owner after a transition was handed off
type Notifier interface {
	NotifyTransition(ctx context.Context, req TransitionRequest) error
}

// TransitionService validates and submits status transitions
type TransitionService struct {
	repo         Repository
	submitter    Submitter
	deduper      Deduper
	notifier     Notifier
	dedupeWindow time.Duration
	now          func() time.Time
	log          zerolog.Logger
}

// NewTransitionService creates a transition service. deduper and notifier may
// be nil to disable the double-submit guard and owner notifications.
func NewTransitionService(repo Repository, submitter Submitter, deduper Deduper, notifier Notifier, dedupeWindow time.Duration, log zerolog.Logger) *TransitionService {
	if dedupeWindow <= 0 {
		dedupeWindow = DefaultDedupeWindow
	}
	return &TransitionService{
		repo:         repo,
		submitter:    submitter,
		deduper:      deduper,
		notifier:     notifier,
		dedupeWindow: dedupeWindow,
		now:          time.Now,
		log:          log,
	}
}

// Transition checks the target status against the stored record, submits the
// change and queues a notification for the owner. Notification failures are
// logged, not returned.
func (s *TransitionService) Transition(ctx context.Context, params TransitionParams) (*TransitionRequest, error) {
	if params.Kind == "" {
		params.Kind = KindRequest
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	rec, err := s.repo.GetByID(ctx, params.Kind, params.RecordID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrRecordNotFound
	}
	if rec.Status == params.Status {
		return nil, ErrSameStatus
	}

	req := TransitionRequest{
		IdempotencyKey: uuid.NewString(),
		Kind:           params.Kind,
		RecordID:       rec.ID,
		UserID:         rec.UserID,
		Type:           rec.Type,
		From:           rec.Status,
		To:             params.Status,
		Actor:          params.Actor,
		RequestedAt:    s.now().UTC(),
	}

	if s.deduper != nil {
		acquired, err := s.deduper.Acquire(ctx, req.DedupeKey(), s.dedupeWindow)
		if err != nil {
			return nil, fmt.Errorf("failed to check duplicate transition: %w", err)
		}
		if !acquired {
			return nil, ErrDuplicateTransition
		}
	}

	if err := s.submitter.Submit(ctx, req); err != nil {
		if s.deduper != nil {
			if relErr := s.deduper.Release(ctx, req.DedupeKey()); relErr != nil {
				s.log.Warn().Err(relErr).Str("key", req.DedupeKey()).Msg("failed to release dedupe key")
			}
		}
		return nil, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	s.log.Info().
		Str("kind", string(req.Kind)).
		Int64("record_id", req.RecordID).
		Str("from", req.From).
		Str("to", req.To).
		Str("idempotency_key", req.IdempotencyKey).
		Msg("transition submitted")

	if s.notifier != nil && req.UserID > 0 {
		if err := s.notifier.NotifyTransition(ctx, req); err != nil {
			s.log.Warn().Err(err).Int64("record_id", req.RecordID).Msg("failed to queue transition notification")
		}
	}

	return &req, nil
}
