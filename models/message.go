package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single notification event pushed by an external system.
// Level is a free-form severity tag; info, success, warning and error are the
// conventional values. Soft-deleted messages stay in storage until purged.
type Message struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Level     string    `json:"level" db:"level"`
	IsRead    bool      `json:"is_read" db:"is_read"`
	IsDeleted bool      `json:"is_deleted" db:"is_deleted"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// MessageView is a message joined with its owning project's name,
// as returned by the query endpoint.
type MessageView struct {
	ID          uuid.UUID `json:"id"`
	ProjectName string    `json:"project_name"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Level       string    `json:"level"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// NotifyRequest is the ingestion payload. The project is addressed by name
// and created on first use. Level defaults to "info" when empty.
type NotifyRequest struct {
	ProjectName string `json:"project_name" binding:"required,max=255"`
	Title       string `json:"title"`
	Content     string `json:"content" binding:"required"`
	Level       string `json:"level"`
}

type QueryParams struct {
	Limit     int    `form:"limit"`
	Skip      int    `form:"skip"`
	Level     string `form:"level"`
	ProjectID string `form:"project_id"`
	Search    string `form:"search"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type MessagesResponse struct {
	Messages []MessageView `json:"messages"`
	Total    int64         `json:"total"`
	Limit    int           `json:"limit"`
	Skip     int           `json:"skip"`
	HasMore  bool          `json:"has_more"`
}
