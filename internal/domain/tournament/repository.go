package tournament

import "context"

type Repository interface {
	UpsertMany(ctx context.Context, items []Tournament) error
}

type ResultRepository interface {
	UpsertMany(ctx context.Context, items []Result) error
}
