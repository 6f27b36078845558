package event

import "context"

type Repository interface {
	UpsertMany(ctx context.Context, items []Event) error
}
