package repository

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"creatorvault/internal/idea/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*IdeaRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewIdeaRepository(db), mock
}

func ideaRows(ideas ...model.Idea) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "notes", "stage", "priority", "tags", "due_date", "created_at", "updated_at"})
	for _, i := range ideas {
		var notes interface{}
		if i.Notes != nil {
			notes = *i.Notes
		}
		var due interface{}
		if i.DueDate != nil {
			due = *i.DueDate
		}
		rows.AddRow(i.ID, i.UserID, i.Title, notes, string(i.Stage), string(i.Priority),
			model.TagsToString(i.Tags), due, i.CreatedAt, i.UpdatedAt)
	}
	return rows
}

func TestCreate(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	notes := "compare the usual suspects"
	idea := &model.Idea{
		ID:        "idea-1",
		UserID:    "u1",
		Title:     "Top 5 AI Tools",
		Notes:     &notes,
		Stage:     model.StageIdea,
		Priority:  model.PriorityHigh,
		Tags:      []string{"blog", "ai"},
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ideas")).
		WithArgs("idea-1", "u1", "Top 5 AI Tools", notes, "idea", "high", "blog,ai", nil, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(idea))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDAndOwner(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	stored := model.Idea{
		ID: "idea-1", UserID: "u1", Title: "Top 5 AI Tools",
		Stage: model.StageIdea, Priority: model.PriorityHigh,
		Tags: []string{"blog", "ai"}, CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, title, notes, stage, priority, tags, due_date, created_at, updated_at FROM ideas WHERE id = $1 AND user_id = $2")).
		WithArgs("idea-1", "u1").
		WillReturnRows(ideaRows(stored))

	idea, err := repo.GetByIDAndOwner("idea-1", "u1")
	require.NoError(t, err)
	require.NotNil(t, idea)
	assert.Equal(t, "Top 5 AI Tools", idea.Title)
	assert.Equal(t, []string{"blog", "ai"}, idea.Tags)
	assert.Nil(t, idea.Notes)
}

func TestGetByIDAndOwnerMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	// Another owner's row and a nonexistent row look identical: no rows.
	mock.ExpectQuery("SELECT .* FROM ideas WHERE id = ").
		WithArgs("idea-1", "u2").
		WillReturnError(sql.ErrNoRows)

	idea, err := repo.GetByIDAndOwner("idea-1", "u2")
	require.NoError(t, err)
	assert.Nil(t, idea)
}

func TestListByOwnerFilters(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	stored := model.Idea{
		ID: "idea-1", UserID: "u1", Title: "AI roundup",
		Stage: model.StageIdea, Priority: model.PriorityMedium,
		Tags: []string{}, CreatedAt: now, UpdatedAt: now,
	}

	where := `user_id = $1 AND (title ILIKE $2 ESCAPE '\' OR notes ILIKE $2 ESCAPE '\') AND stage = $3`
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM ideas WHERE " + where)).
		WithArgs("u1", "%AI%", "idea").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE " + where + " ORDER BY created_at DESC LIMIT $4 OFFSET $5")).
		WithArgs("u1", "%AI%", "idea", 20, 0).
		WillReturnRows(ideaRows(stored))

	items, total, err := repo.ListByOwner("u1", ListQuery{
		Search: "AI", Stage: model.StageIdea,
		Sort: "created_at", Order: "desc", Limit: 20, Offset: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	require.Len(t, items, 1)
	assert.Equal(t, "AI roundup", items[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByOwnerTagsOrSemantics(t *testing.T) {
	repo, mock := newMockRepo(t)

	where := `user_id = $1 AND (',' || tags || ',' LIKE $2 ESCAPE '\' OR ',' || tags || ',' LIKE $3 ESCAPE '\')`
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM ideas WHERE " + where)).
		WithArgs("u1", "%,blog,%", "%,ai,%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE " + where + " ORDER BY created_at DESC LIMIT $4 OFFSET $5")).
		WithArgs("u1", "%,blog,%", "%,ai,%", 20, 0).
		WillReturnRows(ideaRows())

	items, total, err := repo.ListByOwner("u1", ListQuery{
		Tags: []string{"blog", "ai"}, Sort: "created_at", Order: "desc", Limit: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEscapesLikeWildcards(t *testing.T) {
	repo, mock := newMockRepo(t)

	// "100%" and "a_b" must match literally, not as wildcards.
	where := `user_id = $1 AND (title ILIKE $2 ESCAPE '\' OR notes ILIKE $2 ESCAPE '\') AND (',' || tags || ',' LIKE $3 ESCAPE '\')`
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM ideas WHERE " + where)).
		WithArgs("u1", `%100\%%`, `%,a\_b,%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE " + where + " ORDER BY created_at DESC LIMIT $4 OFFSET $5")).
		WithArgs("u1", `%100\%%`, `%,a\_b,%`, 20, 0).
		WillReturnRows(ideaRows())

	_, _, err := repo.ListByOwner("u1", ListQuery{
		Search: "100%", Tags: []string{"a_b"}, Sort: "created_at", Order: "desc", Limit: 20,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `back\\slash`, escapeLike(`back\slash`))
	assert.Equal(t, "plain", escapeLike("plain"))
}

func TestSortFallbacks(t *testing.T) {
	assert.Equal(t, "created_at", sortColumn("danger; DROP TABLE ideas"))
	assert.Equal(t, "created_at", sortColumn(""))
	assert.Equal(t, "title", sortColumn("title"))
	assert.Equal(t, "ASC", sortDirection("asc"))
	assert.Equal(t, "DESC", sortDirection("desc"))
	assert.Equal(t, "DESC", sortDirection("sideways"))
}

func TestUpdateRowGone(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	idea := &model.Idea{
		ID: "idea-1", UserID: "u1", Title: "gone",
		Stage: model.StageDraft, Priority: model.PriorityLow,
		CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE ideas SET")).
		WithArgs("gone", nil, "draft", "low", "", nil, now, "idea-1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.Equal(t, sql.ErrNoRows, repo.Update(idea))
}

func TestDeleteByIDAndOwner(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM ideas WHERE id = $1 AND user_id = $2")).
		WithArgs("idea-1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM ideas WHERE id = $1 AND user_id = $2")).
		WithArgs("idea-1", "u2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteByIDAndOwner("idea-1", "u1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteByIDAndOwner("idea-1", "u2")
	require.NoError(t, err)
	assert.False(t, deleted)
}
