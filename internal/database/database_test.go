package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryLabels(t *testing.T) {
	tests := []struct {
		name      string
		sql       string
		wantOp    string
		wantTable string
	}{
		{
			"Select With Quoted Table",
			`SELECT * FROM "users" WHERE id = $1`,
			"select", "users",
		},
		{
			// The statement's main table is quoted by gorm; subquery
			// tables in the select list are not and must not win.
			"Select With Subquery Before From",
			`SELECT videos.*, (SELECT COUNT(*) FROM likes WHERE likes.video_id = videos.id) as likes_count FROM "videos"`,
			"select", "videos",
		},
		{
			"Raw Insert",
			`INSERT INTO likes (video_id, liked_by_id, created_at) VALUES ($1, $2, NOW())`,
			"insert", "likes",
		},
		{
			"Quoted Insert",
			`INSERT INTO "videos" ("title") VALUES ($1)`,
			"insert", "videos",
		},
		{
			"Update",
			`UPDATE videos SET is_published = NOT is_published WHERE id = $1`,
			"update", "videos",
		},
		{
			"Quoted Update",
			`UPDATE "users" SET "refresh_token"=$1 WHERE id = $2`,
			"update", "users",
		},
		{
			"Delete Unquoted",
			`DELETE FROM watch_events WHERE video_id = $1`,
			"delete", "watch_events",
		},
		{
			"Unrecognized Statement",
			`TRUNCATE TABLE likes`,
			"other", "",
		},
		{
			"Empty",
			"",
			"other", "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, table := queryLabels(tt.sql)
			assert.Equal(t, tt.wantOp, op)
			assert.Equal(t, tt.wantTable, table)
		})
	}
}
