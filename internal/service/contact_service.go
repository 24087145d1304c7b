package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	apperrors "bakehouse/internal/errors"
	"bakehouse/internal/events"
	"bakehouse/internal/metrics"
	"bakehouse/internal/model"
	"bakehouse/internal/repository"
)

// ContactInput is a public contact form submission.
type ContactInput struct {
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	EventDate string
	EventType string
}

// ContactSubmitted is the payload published for each accepted message.
type ContactSubmitted struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Subject   string     `json:"subject"`
	EventType *string    `json:"eventType,omitempty"`
	EventDate *time.Time `json:"eventDate,omitempty"`
}

// ContactService handles contact form submissions and their administration.
type ContactService interface {
	Submit(ctx context.Context, in ContactInput) (*model.ContactMessage, error)
	List(ctx context.Context, status string, page, limit int) (*Page[model.ContactMessage], error)
	GetOne(ctx context.Context, id string) (*model.ContactMessage, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.ContactMessage, error)
	Delete(ctx context.Context, id string) error
}

type contactService struct {
	repo      repository.ContactRepository
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewContactService creates a new contact service.
func NewContactService(repo repository.ContactRepository, publisher events.Publisher, m *metrics.Metrics, logger zerolog.Logger) ContactService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &contactService{
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// ParseEventDate accepts YYYY-MM-DD or RFC3339. Blank input yields nil.
func ParseEventDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, apperrors.ErrInvalidEventDate
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func (s *contactService) Submit(ctx context.Context, in ContactInput) (*model.ContactMessage, error) {
	eventDate, err := ParseEventDate(in.EventDate)
	if err != nil {
		return nil, err
	}

	msg := &model.ContactMessage{
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Phone:     optional(in.Phone),
		Subject:   strings.TrimSpace(in.Subject),
		Message:   in.Message,
		EventDate: eventDate,
		EventType: optional(in.EventType),
		Status:    model.MessageStatusNew,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}
	s.metrics.ContactSubmitted()

	evt := ContactSubmitted{
		ID:        msg.ID.String(),
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   msg.Subject,
		EventType: msg.EventType,
		EventDate: msg.EventDate,
	}
	if err := s.publisher.Publish(ctx, events.TopicContactSubmitted, evt.ID, evt); err != nil {
		s.logger.Warn().Err(err).Str("message_id", evt.ID).Msg("publish contact.submitted")
	}
	return msg, nil
}

func (s *contactService) List(ctx context.Context, status string, page, limit int) (*Page[model.ContactMessage], error) {
	st := model.MessageStatus(strings.ToUpper(filterValue(status)))
	if st != "" && !model.IsValidMessageStatus(st) {
		return nil, apperrors.ErrInvalidStatus
	}
	p := newPagination(page, limit)
	msgs, total, err := s.repo.List(ctx, st, p)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	return newPage(msgs, total, p), nil
}

func (s *contactService) GetOne(ctx context.Context, rawID string) (*model.ContactMessage, error) {
	id, err := parseID(rawID, apperrors.ErrMessageNotFound)
	if err != nil {
		return nil, err
	}
	msg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, fmt.Errorf("get contact message: %w", err)
	}
	return msg, nil
}

// UpdateStatus sets any known status; transitions between statuses are not restricted.
func (s *contactService) UpdateStatus(ctx context.Context, id, status string) (*model.ContactMessage, error) {
	st := model.MessageStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !model.IsValidMessageStatus(st) {
		return nil, apperrors.ErrInvalidStatus
	}
	msg, err := s.GetOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, msg.ID, st); err != nil {
		return nil, fmt.Errorf("update contact message: %w", err)
	}
	msg.Status = st
	return msg, nil
}

func (s *contactService) Delete(ctx context.Context, id string) error {
	msg, err := s.GetOne(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, msg.ID); err != nil {
		return fmt.Errorf("delete contact message: %w", err)
	}
	return nil
}
