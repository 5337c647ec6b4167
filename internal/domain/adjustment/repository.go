package adjustment

import "context"

type AdjustmentRepository interface {
	// ListForUser returns the user's assignments of the given kind. When
	// adjustmentIDs is non-empty only those catalog entries are returned.
	ListForUser(ctx context.Context, kind Kind, userID int64, adjustmentIDs []int64) ([]UserAdjustment, error)
	// ListByUserIDs returns all assignments of the given kind for the given
	// users in one query, for the batch aggregation path.
	ListByUserIDs(ctx context.Context, kind Kind, userIDs []int64) ([]UserAdjustment, error)
	ListCatalog(ctx context.Context, kind Kind) ([]Adjustment, error)
}
