package activity

import "context"

type Repository interface {
	Create(ctx context.Context, e Entry) error
	// ListByUser devuelve lo más reciente primero.
	ListByUser(ctx context.Context, userID string, limit int) ([]Entry, error)
}
