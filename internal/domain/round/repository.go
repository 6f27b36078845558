package round

import "context"

type Repository interface {
	UpsertMany(ctx context.Context, items []Round) error
}

type RankingRepository interface {
	UpsertMany(ctx context.Context, items []Ranking) error
}
