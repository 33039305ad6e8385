package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is a named tenant that owns a stream of messages.
// Each project gets a unique generated API key at creation time. Ingestion
// currently authorizes against the shared notify key instead; the per-project
// key is reserved for future per-project auth.
type Project struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	APIKey    string    `json:"api_key" db:"api_key"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateProjectRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// ProjectsResponse is the standard response format for project listings.
type ProjectsResponse struct {
	Projects []Project `json:"projects"`
	Total    int       `json:"total"`
}
