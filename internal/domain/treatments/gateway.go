package treatments

import "context"

// Gateway es el backend remoto de tratamientos. Todas las llamadas llevan el token de sesión.
type Gateway interface {
	List(ctx context.Context, token string) ([]Treatment, error)
	Get(ctx context.Context, token, id string) (Treatment, error)
	Create(ctx context.Context, token string, t Treatment) (Treatment, error)
	Update(ctx context.Context, token string, t Treatment) (Treatment, error)
	Delete(ctx context.Context, token, id string) error
}
