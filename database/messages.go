package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"notifyhub/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	defaultLimit = 50
	maxLimit     = 1000
)

var ErrMessageNotFound = errors.New("message not found")

// IngestResult identifies the stored message and the project it resolved to.
type IngestResult struct {
	MessageID   uuid.UUID
	ProjectName string
}

// IngestMessage stores a notification, creating its project on first use.
// Project resolution and the message insert run in one transaction, so a
// failed insert rolls back any project auto-create. Level defaults to "info".
func (db *DB) IngestMessage(ctx context.Context, req models.NotifyRequest) (*IngestResult, error) {
	start := time.Now()
	defer func() {
		log.Printf("IngestMessage: duration=%v project=%s level=%s",
			time.Since(start), req.ProjectName, req.Level)
	}()

	level := req.Level
	if level == "" {
		level = "info"
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	project, err := findOrCreateProject(ctx, tx, req.ProjectName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project: %w", err)
	}

	query := `
		INSERT INTO messages (project_id, title, content, level)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var messageID uuid.UUID
	err = tx.QueryRow(ctx, query, project.ID, req.Title, req.Content, level).Scan(&messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert message: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return &IngestResult{MessageID: messageID, ProjectName: project.Name}, nil
}

// findOrCreateProject resolves a project by its unique name. Concurrent
// first-ingests for the same name race on the insert; the loser's conflicting
// insert returns no row and the follow-up select reads the winner's row.
func findOrCreateProject(ctx context.Context, tx pgx.Tx, name string) (*models.Project, error) {
	insert := `
		INSERT INTO projects (name, api_key)
		VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING
		RETURNING id, name, api_key, created_at
	`

	project, err := scanProject(tx.QueryRow(ctx, insert, name, generateAPIKey()))
	if err == nil {
		log.Printf("Auto-created project: %s (ID: %s)", project.Name, project.ID)
		return project, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	query := `
		SELECT id, name, api_key, created_at
		FROM projects
		WHERE name = $1
	`

	return scanProject(tx.QueryRow(ctx, query, name))
}

// QueryMessages retrieves non-deleted messages joined with their project name,
// newest first, with optional filtering and pagination.
// Uses COUNT(*) OVER() window function to get total count in single query.
//
// Filters applied:
//   - Level: exact match, skipped when empty or "all"
//   - ProjectID: exact match, skipped when empty
//   - Search: case-insensitive substring match on title or content
//   - StartDate/EndDate: inclusive created_at range (RFC3339 format)
//   - Limit: max results (default 50, max 1000)
//   - Skip: pagination offset (default 0)
//
// Returns empty slice (not nil) if no messages match.
func (db *DB) QueryMessages(ctx context.Context, params models.QueryParams) ([]models.MessageView, int64, error) {
	start := time.Now()
	defer func() {
		log.Printf("QueryMessages: duration=%v filters=[level=%s project=%s search=%s]",
			time.Since(start), params.Level, params.ProjectID, params.Search)
	}()

	limit := validateLimit(params.Limit, defaultLimit, maxLimit)
	skip := validateOffset(params.Skip)

	qb := NewQueryBuilder()
	qb.AddCondition("m.is_deleted", false)

	if params.Level != "" && params.Level != "all" {
		qb.AddCondition("m.level", params.Level)
	}
	if params.ProjectID != "" {
		projectID, err := uuid.Parse(params.ProjectID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid project_id: %w", err)
		}
		qb.AddCondition("m.project_id", projectID)
	}
	if params.Search != "" {
		qb.AddSearch("m.title", "m.content", params.Search)
	}
	if err := qb.AddTimeRange("m.created_at", params.StartDate, params.EndDate); err != nil {
		return nil, 0, err
	}

	// SAFETY: All user input is parameterized via $N placeholders.
	// The WHERE clause only contains fixed column names and SQL operators.
	query := fmt.Sprintf(`
		SELECT
			m.id, p.name, m.title, m.content, m.level, m.is_read, m.created_at,
			COUNT(*) OVER() as total_count
		FROM messages m
		JOIN projects p ON p.id = m.project_id
		%s
		ORDER BY m.created_at DESC
		LIMIT $%d OFFSET $%d
	`, qb.WhereClause(), qb.NextArgNum(), qb.NextArgNum()+1)

	args := append(qb.Args(), limit, skip)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	return scanMessageViews(rows)
}

// SoftDeleteMessage hides a message from all query reads until purged.
// Re-deleting an already-deleted message is a no-op success; only an unknown
// id is an error.
func (db *DB) SoftDeleteMessage(ctx context.Context, messageID uuid.UUID) error {
	query := `UPDATE messages SET is_deleted = TRUE WHERE id = $1`

	result, err := db.Pool.Exec(ctx, query, messageID)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrMessageNotFound
	}

	return nil
}

// PurgeDeletedMessages permanently removes every soft-deleted message and
// returns how many rows were destroyed. This is irreversible.
func (db *DB) PurgeDeletedMessages(ctx context.Context) (int64, error) {
	start := time.Now()

	query := `DELETE FROM messages WHERE is_deleted = TRUE`

	result, err := db.Pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to purge messages: %w", err)
	}

	deleted := result.RowsAffected()
	log.Printf("PurgeDeletedMessages: duration=%v deleted=%d", time.Since(start), deleted)
	return deleted, nil
}

// Helper functions

func scanMessageView(row rowScanner) (*models.MessageView, int64, error) {
	var view models.MessageView
	var total int64

	err := row.Scan(
		&view.ID, &view.ProjectName, &view.Title, &view.Content,
		&view.Level, &view.IsRead, &view.CreatedAt, &total,
	)
	if err != nil {
		return nil, 0, err
	}

	return &view, total, nil
}

func scanMessageViews(rows rowsScanner) ([]models.MessageView, int64, error) {
	views := []models.MessageView{}
	var total int64

	for rows.Next() {
		view, t, err := scanMessageView(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan message: %w", err)
		}
		total = t
		views = append(views, *view)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating messages: %w", err)
	}

	return views, total, nil
}
