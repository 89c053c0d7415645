package player

import "context"

// Repository exposes player catalog reads.
type Repository interface {
	ListActiveByRole(ctx context.Context, role string) ([]Player, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	List(ctx context.Context) ([]Player, error)
}
