package services

import (
	"context"
	"log/slog"

	"chatboard/domain"
	"chatboard/moderation"
	"chatboard/repositories"
)

type IMessageService interface {
	ListMessages(ctx context.Context) ([]domain.Message, error)
	CreateMessage(ctx context.Context, username, text string) (domain.Message, error)
}

// MessageService exposes the message collection over the key-value
// store. It is stateless: every call stands alone, and notifying other
// clients after a create is deliberately left to the caller so the
// service stays transport-agnostic.
type MessageService struct {
	repository repositories.IMessageRepository
	moderator  *moderation.Moderator
	log        *slog.Logger
}

// NewMessageService wires the service. A nil moderator disables
// censoring.
func NewMessageService(repository repositories.IMessageRepository, moderator *moderation.Moderator, log *slog.Logger) MessageService {
	return MessageService{repository: repository, moderator: moderator, log: log}
}

// ListMessages returns every stored message, newest first. An empty
// board yields an empty slice, not an error.
func (s MessageService) ListMessages(_ context.Context) ([]domain.Message, error) {
	return s.repository.List()
}

// CreateMessage validates the inputs, assigns id and timestamp, and
// persists exactly one new record. Validation failures reject the
// request before anything is written.
func (s MessageService) CreateMessage(_ context.Context, username, text string) (domain.Message, error) {
	if err := domain.ValidateNewMessage(username, text); err != nil {
		return domain.Message{}, err
	}
	if s.moderator != nil {
		text = s.moderator.Censor(text)
	}

	message := domain.NewMessage(username, text)
	if err := s.repository.Store(message); err != nil {
		return domain.Message{}, err
	}
	s.log.Debug("Stored message", "id", message.ID, "username", message.Username)
	return message, nil
}
