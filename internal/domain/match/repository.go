package match

import "context"

type Repository interface {
	UpsertMany(ctx context.Context, items []Match) error
}
