package database

import (
	"context"
	"testing"

	"notifyhub/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProject(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()
	project, err := db.CreateProject(ctx, "Test Project")

	require.NoError(t, err)
	assert.NotEmpty(t, project.ID)
	assert.Equal(t, "Test Project", project.Name)
	assert.NotEmpty(t, project.APIKey)
	assert.True(t, len(project.APIKey) > 10, "API key should be generated")
	assert.False(t, project.CreatedAt.IsZero())
}

func TestCreateProject_DuplicateName(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()

	_, err := db.CreateProject(ctx, "Test Project")
	require.NoError(t, err)

	_, err = db.CreateProject(ctx, "Test Project")
	assert.ErrorIs(t, err, ErrProjectExists)
}

func TestCreateProject_UniqueAPIKeys(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()

	first, err := db.CreateProject(ctx, "Project 1")
	require.NoError(t, err)
	second, err := db.CreateProject(ctx, "Project 2")
	require.NoError(t, err)

	assert.NotEqual(t, first.APIKey, second.APIKey)
}

func TestGetProjectByName(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()

	created, err := db.CreateProject(ctx, "Test Project")
	require.NoError(t, err)

	retrieved, err := db.GetProjectByName(ctx, "Test Project")
	require.NoError(t, err)

	assert.Equal(t, created.ID, retrieved.ID)
	assert.Equal(t, created.Name, retrieved.Name)
	assert.Equal(t, created.APIKey, retrieved.APIKey)
}

func TestGetProjectByName_Missing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()

	_, err := db.GetProjectByName(ctx, "no-such-project")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestListProjects(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()

	projects, err := db.ListProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)

	_, err = db.CreateProject(ctx, "Project 1")
	require.NoError(t, err)
	_, err = db.CreateProject(ctx, "Project 2")
	require.NoError(t, err)
	_, err = db.CreateProject(ctx, "Project 3")
	require.NoError(t, err)

	projects, err = db.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 3)
}

func TestDeleteProject(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()

	project, err := db.CreateProject(ctx, "Test Project")
	require.NoError(t, err)

	err = db.DeleteProject(ctx, project.ID)
	require.NoError(t, err)

	_, err = db.GetProjectByName(ctx, "Test Project")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestDeleteProject_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()

	err := db.DeleteProject(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestDeleteProject_CascadesMessages(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := GetTestDB()
	CleanupTestDB(t, db)

	ctx := context.Background()

	result, err := db.IngestMessage(ctx, models.NotifyRequest{
		ProjectName: "doomed",
		Content:     "about to go",
	})
	require.NoError(t, err)

	project, err := db.GetProjectByName(ctx, "doomed")
	require.NoError(t, err)

	err = db.DeleteProject(ctx, project.ID)
	require.NoError(t, err)

	messages, total, err := db.QueryMessages(ctx, models.QueryParams{})
	require.NoError(t, err)
	assert.Empty(t, messages)
	assert.Equal(t, int64(0), total)

	// the cascaded message is gone for good, not soft-deleted
	err = db.SoftDeleteMessage(ctx, result.MessageID)
	assert.ErrorIs(t, err, ErrMessageNotFound)
}
