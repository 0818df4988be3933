package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"walletadmin/internal/domain/notification"
)

const fcmBatchLimit = 500

// TokenDeactivator is called when FCM reports a token as unregistered or invalid.
type TokenDeactivator func(ctx context.Context, token string) error

// sender is the part of *messaging.Client the client calls
type sender interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// Client implements notification.Messenger using Firebase Cloud Messaging
type Client struct {
	msg         sender
	deactivator TokenDeactivator
	log         zerolog.Logger
}

var _ notification.Messenger = (*Client)(nil)

// NewClient initializes a Firebase app from a service account file.
// deactivator may be nil.
func NewClient(ctx context.Context, credentialsFile string, deactivator TokenDeactivator, log zerolog.Logger) (*Client, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase messaging client: %w", err)
	}

	return newClient(msgClient, deactivator, log), nil
}

func newClient(s sender, deactivator TokenDeactivator, log zerolog.Logger) *Client {
	return &Client{
		msg:         s,
		deactivator: deactivator,
		log:         log.With().Str("component", "fcm").Logger(),
	}
}

// SendMulticast sends to many devices in batches of 500, the FCM limit.
// Per-token failures are logged; only a failed batch call is returned.
func (c *Client) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) error {
	if len(tokens) == 0 {
		return nil
	}

	var success, failure int
	for _, batch := range chunkTokens(tokens, fcmBatchLimit) {
		resp, err := c.msg.SendEachForMulticast(ctx, &messaging.MulticastMessage{
			Tokens:       batch,
			Notification: &messaging.Notification{Title: title, Body: body},
			Data:         data,
		})
		if err != nil {
			return fmt.Errorf("failed to send FCM multicast: %w", err)
		}

		success += resp.SuccessCount
		failure += resp.FailureCount
		if resp.FailureCount > 0 {
			c.handleMulticastFailures(ctx, batch, resp)
		}
	}

	c.log.Info().Int("success", success).Int("failure", failure).Msg("multicast sent")
	return nil
}

func (c *Client) handleMulticastFailures(ctx context.Context, tokens []string, resp *messaging.BatchResponse) {
	for i, r := range resp.Responses {
		if r == nil || r.Error == nil || i >= len(tokens) {
			continue
		}
		if isInvalidToken(r.Error) {
			c.deactivateToken(ctx, tokens[i])
			continue
		}
		c.log.Warn().Err(r.Error).Int("index", i).Msg("send failed")
	}
}

func isInvalidToken(err error) bool {
	return messaging.IsUnregistered(err) || messaging.IsInvalidArgument(err)
}

func (c *Client) deactivateToken(ctx context.Context, token string) {
	if c.deactivator == nil {
		return
	}
	c.log.Info().Msg("deactivating invalid token")
	if err := c.deactivator(ctx, token); err != nil {
		c.log.Error().Err(err).Msg("failed to deactivate token")
	}
}

func chunkTokens(tokens []string, size int) [][]string {
	var chunks [][]string
	for i := 0; i < len(tokens); i += size {
		end := min(i+size, len(tokens))
		chunks = append(chunks, tokens[i:end])
	}
	return chunks
}
