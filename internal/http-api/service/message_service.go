package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"editorial/internal/http-api/models"
	"editorial/internal/http-api/repository"
)

type ContactInput struct {
	Email   string
	Subject string
	Body    string
}

type MessageService interface {
	// SubmitContact stores a contact message. actor is nil for anonymous visitors.
	SubmitContact(ctx context.Context, actor *Actor, in ContactInput) (*models.Message, error)
	List(ctx context.Context, actor Actor) ([]models.Message, error)
	MarkDone(ctx context.Context, actor Actor, id int64) error
	MarkRead(ctx context.Context, actor Actor, id int64) error
}

type messageService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
	notifier Notifier
	log      *slog.Logger
	now      func() time.Time
}

func NewMessageService(
	messages repository.MessageRepository,
	users repository.UserRepository,
	notifier Notifier,
	log *slog.Logger,
) MessageService {
	return &messageService{
		messages: messages,
		users:    users,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

func (s *messageService) SubmitContact(ctx context.Context, actor *Actor, in ContactInput) (*models.Message, error) {
	subject := strings.TrimSpace(in.Subject)
	body := strings.TrimSpace(in.Body)
	switch {
	case subject == "":
		return nil, invalid("subject", "is required")
	case !maxLen(subject, 256):
		return nil, invalid("subject", "must be at most 256 characters")
	case body == "":
		return nil, invalid("body", "is required")
	case !maxLen(body, 2000):
		return nil, invalid("body", "must be at most 2000 characters")
	}

	msg := &models.Message{
		Subject: subject,
		Body:    body,
		SentAt:  s.now().UTC(),
		Status:  models.MessageNew,
	}

	from := ""
	if actor != nil {
		id := actor.UserID
		msg.SenderID = &id
		if u, err := s.users.FindByID(ctx, id); err == nil {
			from = u.Email
		}
	} else {
		email := NormalizeEmail(in.Email)
		if !validEmail(email) {
			return nil, invalid("email", "a valid address is required for anonymous messages")
		}
		msg.SenderEmail = &email
		from = email
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.log.Info("contact_message_received", "message_id", msg.ID, "authenticated", actor != nil)
	s.notifier.ContactReceived(from, subject, body)
	return msg, nil
}

func (s *messageService) List(ctx context.Context, actor Actor) ([]models.Message, error) {
	if !actor.Is(models.RoleAdmin) {
		return nil, ErrForbidden
	}
	return s.messages.List(ctx, 0)
}

func (s *messageService) MarkDone(ctx context.Context, actor Actor, id int64) error {
	if !actor.Is(models.RoleAdmin) {
		return ErrForbidden
	}
	if _, err := s.messages.GetByID(ctx, id); err != nil {
		return notFound(err)
	}
	return s.messages.SetStatus(ctx, id, models.MessageDone)
}

func (s *messageService) MarkRead(ctx context.Context, actor Actor, id int64) error {
	if !actor.Is(models.RoleAdmin) {
		return ErrForbidden
	}
	if _, err := s.messages.GetByID(ctx, id); err != nil {
		return notFound(err)
	}
	return s.messages.MarkRead(ctx, id)
}
