package touchdown

import "context"

type Repository interface {
	GetFacts(ctx context.Context, gameID string) (Facts, bool, error)
	// UpsertFacts replaces the stored facts of a game in full.
	UpsertFacts(ctx context.Context, facts Facts) error
	DeleteFacts(ctx context.Context, gameID string) error
	ListFinalGameIDs(ctx context.Context) ([]string, error)
	ListFactsBySeason(ctx context.Context, season int) ([]Facts, error)

	GetReviewFlag(ctx context.Context, gameID string) (ReviewFlag, bool, error)
	UpsertReviewFlag(ctx context.Context, flag ReviewFlag) error
	DeleteReviewFlag(ctx context.Context, gameID string) error
	ListReviewFlags(ctx context.Context) ([]ReviewFlag, error)
}
