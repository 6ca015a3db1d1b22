package resumes

import "context"

// Repo defines persistence operations for resume versions. The store
// enforces a uniqueness constraint on (user_id, version); Insert returns
// ErrVersionConflict when a concurrent writer already claimed the slot.
type Repo interface {
	Insert(ctx context.Context, userID int64, content string, version int) (Resume, error)
	MaxVersion(ctx context.Context, userID int64) (int, error)
	ListByUser(ctx context.Context, userID int64) ([]Resume, error)
}
