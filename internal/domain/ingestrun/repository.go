package ingestrun

import "context"

type Repository interface {
	Insert(ctx context.Context, run Run) error
}
