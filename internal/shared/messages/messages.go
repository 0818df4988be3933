// Package messages holds the push notification copy sent to wallet users.
package messages

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

//go:embed notifications.json
var defaultJSON []byte

type MessageText struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Messages maps a transition's target status to its push text, separately
// for bank requests and transaction history entries. Bodies may use the
// {type} and {status} placeholders.
type Messages struct {
	Requests map[string]MessageText `json:"requests"`
	History  map[string]MessageText `json:"history"`
}

// Default returns the built-in copy.
func Default() *Messages {
	m, err := parse(defaultJSON)
	if err != nil {
		panic(fmt.Sprintf("messages: embedded notifications.json: %v", err))
	}
	return m
}

// Load reads a messages file. Statuses missing from the file keep their
// built-in text.
func Load(path string) (*Messages, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read messages file: %w", err)
	}
	override, err := parse(data)
	if err != nil {
		return nil, err
	}

	m := Default()
	for status, text := range override.Requests {
		m.Requests[status] = text
	}
	for status, text := range override.History {
		m.History[status] = text
	}
	return m, nil
}

func parse(data []byte) (*Messages, error) {
	m := &Messages{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse messages file: %w", err)
	}
	if m.Requests == nil {
		m.Requests = map[string]MessageText{}
	}
	if m.History == nil {
		m.History = map[string]MessageText{}
	}
	return m, nil
}

// ForTransition renders the text for a record of kind ("request" or
// "history") moving to status. ok is false when no text is configured.
func (m *Messages) ForTransition(kind, status, recordType string) (MessageText, bool) {
	table := m.Requests
	if kind == "history" {
		table = m.History
	}
	text, ok := table[status]
	if !ok {
		return MessageText{}, false
	}

	r := strings.NewReplacer(
		"{type}", humanize(recordType),
		"{status}", humanize(status),
	)
	return MessageText{Title: r.Replace(text.Title), Body: r.Replace(text.Body)}, true
}

func humanize(s string) string {
	if s == "" {
		return "transaction"
	}
	return strings.ReplaceAll(strings.ToLower(s), "_", " ")
}
