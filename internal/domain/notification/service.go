package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Service delivers push notifications to wallet users
type Service struct {
	repo      Repository
	messenger Messenger
	log       zerolog.Logger
}

// NewService creates a new notification service. messenger may be nil when
// push delivery is disabled; sends then become no-ops.
func NewService(repo Repository, messenger Messenger, log zerolog.Logger) *Service {
	return &Service{repo: repo, messenger: messenger, log: log}
}

// SendToUser pushes a message to every active device of a user.
// A user without devices is not an error.
func (s *Service) SendToUser(ctx context.Context, userID int64, title, body, route string, data map[string]string) error {
	if userID <= 0 {
		return errors.New("valid user ID is required")
	}
	if s.messenger == nil {
		return nil
	}

	tokens, err := s.repo.GetActiveTokensByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load device tokens: %w", err)
	}
	if len(tokens) == 0 {
		s.log.Debug().Int64("user_id", userID).Msg("no active device tokens")
		return nil
	}

	payload := make(map[string]string, len(data)+1)
	for k, v := range data {
		payload[k] = v
	}
	if _, ok := payload["route"]; !ok && route != "" {
		payload["route"] = route
	}

	tokenStrings := make([]string, len(tokens))
	for i, t := range tokens {
		tokenStrings[i] = t.Token
	}

	if err := s.messenger.SendMulticast(ctx, tokenStrings, title, body, payload); err != nil {
		return fmt.Errorf("failed to send notification to user %d: %w", userID, err)
	}
	return nil
}
