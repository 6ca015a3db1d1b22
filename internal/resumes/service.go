package resumes

import (
	"context"
	"errors"
	"strings"
)

// Service is the version ledger: it assigns monotonically increasing
// version numbers per user and lists history.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// CreateVersion stores content at the next version for the user. The
// read-max-then-insert sequence can race with a concurrent writer; the
// schema's (user_id, version) constraint catches that, and the ledger
// retries once with a re-read max before giving up.
func (s *Service) CreateVersion(ctx context.Context, userID int64, content string) (Resume, error) {
	if userID <= 0 || strings.TrimSpace(content) == "" {
		return Resume{}, ErrInvalidInput
	}

	resume, err := s.insertNext(ctx, userID, content)
	if errors.Is(err, ErrVersionConflict) {
		resume, err = s.insertNext(ctx, userID, content)
	}
	return resume, err
}

func (s *Service) insertNext(ctx context.Context, userID int64, content string) (Resume, error) {
	max, err := s.Repo.MaxVersion(ctx, userID)
	if err != nil {
		return Resume{}, err
	}
	return s.Repo.Insert(ctx, userID, content, max+1)
}

// ListVersions returns the user's versions, newest version first.
func (s *Service) ListVersions(ctx context.Context, userID int64) ([]Resume, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID)
}
