package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryBuilder_AddCondition(t *testing.T) {
	qb := NewQueryBuilder()

	qb.AddCondition("level", "error")

	assert.Equal(t, "WHERE level = $1", qb.WhereClause())
	assert.Equal(t, []interface{}{"error"}, qb.Args())
	assert.Equal(t, 2, qb.NextArgNum())
}

func TestQueryBuilder_MultipleConditions(t *testing.T) {
	qb := NewQueryBuilder()

	qb.AddCondition("m.is_deleted", false)
	qb.AddCondition("m.level", "error")
	qb.AddCondition("m.project_id", "123")

	assert.Equal(t, "WHERE m.is_deleted = $1 AND m.level = $2 AND m.project_id = $3", qb.WhereClause())
	assert.Equal(t, []interface{}{false, "error", "123"}, qb.Args())
	assert.Equal(t, 4, qb.NextArgNum())
}

func TestQueryBuilder_AddTimeRange(t *testing.T) {
	tests := []struct {
		name           string
		startDate      string
		endDate        string
		wantConditions int
		wantErr        bool
	}{
		{
			name:           "both start and end",
			startDate:      "2025-08-01T00:00:00Z",
			endDate:        "2025-08-31T23:59:59Z",
			wantConditions: 2,
			wantErr:        false,
		},
		{
			name:           "only start",
			startDate:      "2025-08-01T00:00:00Z",
			endDate:        "",
			wantConditions: 1,
			wantErr:        false,
		},
		{
			name:           "only end",
			startDate:      "",
			endDate:        "2025-08-31T23:59:59Z",
			wantConditions: 1,
			wantErr:        false,
		},
		{
			name:           "neither",
			startDate:      "",
			endDate:        "",
			wantConditions: 0,
			wantErr:        false,
		},
		{
			name:      "invalid start date",
			startDate: "not-a-date",
			endDate:   "",
			wantErr:   true,
		},
		{
			name:      "invalid end date",
			startDate: "",
			endDate:   "not-a-date",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qb := NewQueryBuilder()
			err := qb.AddTimeRange("created_at", tt.startDate, tt.endDate)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, qb.Args(), tt.wantConditions)
			assert.Equal(t, tt.wantConditions+1, qb.NextArgNum())
		})
	}
}

func TestQueryBuilder_AddSearch(t *testing.T) {
	qb := NewQueryBuilder()

	qb.AddSearch("m.title", "m.content", "timeout")

	assert.Equal(t, "WHERE (m.title ILIKE $1 OR m.content ILIKE $1)", qb.WhereClause())
	assert.Equal(t, []interface{}{"%timeout%"}, qb.Args())
	assert.Equal(t, 2, qb.NextArgNum())
}

func TestQueryBuilder_SearchComposesWithConditions(t *testing.T) {
	qb := NewQueryBuilder()

	qb.AddCondition("m.is_deleted", false)
	qb.AddSearch("m.title", "m.content", "deploy")
	qb.AddCondition("m.level", "error")

	assert.Equal(t,
		"WHERE m.is_deleted = $1 AND (m.title ILIKE $2 OR m.content ILIKE $2) AND m.level = $3",
		qb.WhereClause())
	assert.Equal(t, []interface{}{false, "%deploy%", "error"}, qb.Args())
	assert.Equal(t, 4, qb.NextArgNum())
}

func TestValidateLimit(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		expected int
	}{
		{name: "use provided limit", limit: 10, expected: 10},
		{name: "use default when zero", limit: 0, expected: 50},
		{name: "use default when negative", limit: -10, expected: 50},
		{name: "cap at max", limit: 5000, expected: 1000},
		{name: "exactly at max", limit: 1000, expected: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, validateLimit(tt.limit, defaultLimit, maxLimit))
		})
	}
}

func TestValidateOffset(t *testing.T) {
	tests := []struct {
		name     string
		offset   int
		expected int
	}{
		{name: "positive offset", offset: 10, expected: 10},
		{name: "zero offset", offset: 0, expected: 0},
		{name: "negative offset becomes zero", offset: -10, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, validateOffset(tt.offset))
		})
	}
}
