package resumes

import "time"

// ResumeResponse is the outward-facing representation of a version.
type ResumeResponse struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

func toResumeResponse(resume Resume) ResumeResponse {
	return ResumeResponse{
		ID:        resume.ID,
		Content:   resume.Content,
		Version:   resume.Version,
		CreatedAt: resume.CreatedAt,
	}
}

func toResumeResponses(list []Resume) []ResumeResponse {
	out := make([]ResumeResponse, 0, len(list))
	for _, resume := range list {
		out = append(out, toResumeResponse(resume))
	}
	return out
}
