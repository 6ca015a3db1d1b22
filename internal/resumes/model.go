package resumes

import "time"

// Resume is an immutable content snapshot. Versions are per-user,
// strictly increasing, and never reused; "editing" creates a new version.
type Resume struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Content   string    `json:"content"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}
