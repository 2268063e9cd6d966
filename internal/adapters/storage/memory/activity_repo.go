package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"dulce-dosis-web/internal/domain/activity"
)

type activityRepo struct {
	mu   sync.RWMutex
	byID map[string]activity.Entry
}

func NewActivityRepo() activity.Repository {
	return &activityRepo{
		byID: make(map[string]activity.Entry),
	}
}

func (r *activityRepo) Create(ctx context.Context, e activity.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("entry id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("entry already exists")
	}
	r.byID[e.ID] = e
	return nil
}

func (r *activityRepo) ListByUser(ctx context.Context, userID string, limit int) ([]activity.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]activity.Entry, 0)
	for _, e := range r.byID {
		if e.UserID == userID {
			out = append(out, e)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
