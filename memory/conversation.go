// Package memory persists a minimal text-only transcript of chat sessions so
// `ncsh chat` can resume where the last session left off. Tool blocks are
// transient and never persisted.
package memory

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// DefaultPath keeps session transcripts next to the telemetry stream.
const DefaultPath = ".ncsh/conversation.json"

// Message is a minimal persisted view of a chat turn.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text,omitempty"`
}

// LoadConversation returns the persisted transcript, or nil when no session
// has been saved yet.
func LoadConversation(path string) ([]Message, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var msgs []Message
	if err := json.Unmarshal(b, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// SaveConversation writes the transcript, creating the parent directory on
// first use.
func SaveConversation(path string, msgs []Message) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	b, err := json.MarshalIndent(msgs, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
