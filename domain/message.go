// Package domain contains core concepts of the chat board.
// This file defines the Message entity and its creation rules.
// Messages are immutable once created and validated by the domain.
package domain

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"chatboard/errors"
)

var validate = validator.New()

// Message represents an immutable chat entry.
// The id and timestamp are assigned server-side at creation;
// username and text come from the sender as-is.
type Message struct {
	ID        string `json:"id" validate:"required"`
	Username  string `json:"username" validate:"required"`
	Text      string `json:"text" validate:"required"`
	Timestamp int64  `json:"timestamp" validate:"required,gt=0"`
}

// NewMessage assigns a fresh unique id and the current wall clock
// in milliseconds. Callers validate the inputs first.
func NewMessage(username, text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Username:  username,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
	}
}

// ValidateNewMessage rejects inputs that are absent or blank after
// trimming. Whitespace-only fields count as empty.
func ValidateNewMessage(username, text string) error {
	if strings.TrimSpace(username) == "" {
		return errors.ErrEmptyUsername
	}
	if strings.TrimSpace(text) == "" {
		return errors.ErrEmptyText
	}
	return nil
}

// Validate checks a stored record against the entity invariants.
// Used when parsing records back out of the store.
func (m Message) Validate() error {
	return validate.Struct(m)
}
