package resumes

import (
	"context"
	"sort"
	"sync"
	"time"
)

type versionKey struct {
	userID  int64
	version int
}

// MemoryRepo is an in-memory Repo used in dev mode and tests. It enforces
// the same (user_id, version) uniqueness the schema does so the ledger's
// retry contract holds without a database.
type MemoryRepo struct {
	mu      sync.RWMutex
	nextID  int64
	rows    []Resume
	claimed map[versionKey]struct{}
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1, claimed: make(map[versionKey]struct{})}
}

func (r *MemoryRepo) Insert(ctx context.Context, userID int64, content string, version int) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := versionKey{userID: userID, version: version}
	if _, taken := r.claimed[key]; taken {
		return Resume{}, ErrVersionConflict
	}
	resume := Resume{
		ID:        r.nextID,
		UserID:    userID,
		Content:   content,
		Version:   version,
		CreatedAt: time.Now().UTC(),
	}
	r.nextID++
	r.claimed[key] = struct{}{}
	r.rows = append(r.rows, resume)
	return resume, nil
}

func (r *MemoryRepo) MaxVersion(ctx context.Context, userID int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	max := 0
	for _, resume := range r.rows {
		if resume.UserID == userID && resume.Version > max {
			max = resume.Version
		}
	}
	return max, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID int64) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Resume
	for _, resume := range r.rows {
		if resume.UserID == userID {
			out = append(out, resume)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version > out[j].Version })
	return out, nil
}
