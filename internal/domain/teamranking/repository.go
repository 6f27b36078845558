package teamranking

import "context"

type Repository interface {
	UpsertMany(ctx context.Context, items []Snapshot) error
}
