package player

import "context"

type Repository interface {
	UpsertMany(ctx context.Context, items []Player) error
}
