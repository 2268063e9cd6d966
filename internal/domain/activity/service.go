package activity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

const DefaultListLimit = 50

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type RecordInput struct {
	UserID  string
	Kind    Kind
	Subject string
	Detail  string
}

func (s *Service) Record(ctx context.Context, in RecordInput) (Entry, error) {
	if in.Kind == "" {
		return Entry{}, ErrInvalidInput
	}

	e := Entry{
		ID:         uuid.NewString(),
		UserID:     strings.TrimSpace(in.UserID),
		Kind:       in.Kind,
		Subject:    strings.TrimSpace(in.Subject),
		Detail:     strings.TrimSpace(in.Detail),
		OccurredAt: s.now().UTC(),
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string, limit int) ([]Entry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	if limit <= 0 || limit > 500 {
		limit = DefaultListLimit
	}
	return s.repo.ListByUser(ctx, userID, limit)
}

// Recorder es lo que otros módulos necesitan para dejar constancia de una acción.
type Recorder interface {
	Record(ctx context.Context, in RecordInput) (Entry, error)
}
