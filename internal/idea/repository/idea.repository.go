package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"creatorvault/internal/idea/model"
	"creatorvault/pkg/logger"
)

// ListQuery carries the list filters. The zero value means "no filter" for
// every field except Limit, which handlers default before calling.
type ListQuery struct {
	Search   string
	Stage    model.Stage
	Priority model.Priority
	Tags     []string
	Sort     string
	Order    string
	Limit    int
	Offset   int
}

type IdeaRepository struct {
	DB *sql.DB
}

func NewIdeaRepository(db *sql.DB) *IdeaRepository {
	return &IdeaRepository{DB: db}
}

const ideaColumns = "id, user_id, title, notes, stage, priority, tags, due_date, created_at, updated_at"

func (r *IdeaRepository) Create(idea *model.Idea) error {
	_, err := r.DB.Exec(`INSERT INTO ideas (id, user_id, title, notes, stage, priority, tags, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		idea.ID, idea.UserID, idea.Title, idea.Notes, string(idea.Stage), string(idea.Priority),
		model.TagsToString(idea.Tags), idea.DueDate, idea.CreatedAt, idea.UpdatedAt)
	if err != nil {
		logger.Sugar.Errorf("Failed to create idea %s: %v", idea.ID, err)
	}
	return err
}

// GetByIDAndOwner returns nil without error when the idea is absent or owned
// by someone else; callers cannot tell the two apart.
func (r *IdeaRepository) GetByIDAndOwner(id, ownerID string) (*model.Idea, error) {
	row := r.DB.QueryRow("SELECT "+ideaColumns+" FROM ideas WHERE id = $1 AND user_id = $2", id, ownerID)
	idea, err := scanIdea(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get idea %s: %v", id, err)
		return nil, err
	}
	return idea, nil
}

// ListByOwner returns one page of matching ideas plus the total count of
// matches before pagination.
func (r *IdeaRepository) ListByOwner(ownerID string, q ListQuery) ([]model.Idea, int, error) {
	where, args := buildFilters(ownerID, q)

	var total int
	if err := r.DB.QueryRow("SELECT COUNT(*) FROM ideas WHERE "+where, args...).Scan(&total); err != nil {
		logger.Sugar.Errorf("Failed to count ideas for user %s: %v", ownerID, err)
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM ideas WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		ideaColumns, where, sortColumn(q.Sort), sortDirection(q.Order), len(args)+1, len(args)+2)
	rows, err := r.DB.Query(query, append(args, q.Limit, q.Offset)...)
	if err != nil {
		logger.Sugar.Errorf("Failed to list ideas for user %s: %v", ownerID, err)
		return nil, 0, err
	}
	defer rows.Close()

	items := []model.Idea{}
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			logger.Sugar.Errorf("Failed to scan idea row: %v", err)
			return nil, 0, err
		}
		items = append(items, *idea)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update persists every field of an already-fetched, already-authorized
// instance. sql.ErrNoRows signals the row vanished between fetch and write.
func (r *IdeaRepository) Update(idea *model.Idea) error {
	result, err := r.DB.Exec(`UPDATE ideas SET title = $1, notes = $2, stage = $3, priority = $4, tags = $5, due_date = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9`,
		idea.Title, idea.Notes, string(idea.Stage), string(idea.Priority), model.TagsToString(idea.Tags),
		idea.DueDate, idea.UpdatedAt, idea.ID, idea.UserID)
	if err != nil {
		logger.Sugar.Errorf("Failed to update idea %s: %v", idea.ID, err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteByIDAndOwner reports whether a matching row existed and was removed.
func (r *IdeaRepository) DeleteByIDAndOwner(id, ownerID string) (bool, error) {
	result, err := r.DB.Exec("DELETE FROM ideas WHERE id = $1 AND user_id = $2", id, ownerID)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete idea %s: %v", id, err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func buildFilters(ownerID string, q ListQuery) (string, []interface{}) {
	conds := []string{"user_id = $1"}
	args := []interface{}{ownerID}

	if q.Search != "" {
		args = append(args, "%"+escapeLike(q.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d ESCAPE '\\' OR notes ILIKE $%d ESCAPE '\\')", n, n))
	}
	if q.Stage != "" {
		args = append(args, string(q.Stage))
		conds = append(conds, fmt.Sprintf("stage = $%d", len(args)))
	}
	if q.Priority != "" {
		args = append(args, string(q.Priority))
		conds = append(conds, fmt.Sprintf("priority = $%d", len(args)))
	}
	// Tag membership is OR across supplied tags. The column is comma
	// separated, so each tag is matched with delimiters on both sides.
	if len(q.Tags) > 0 {
		tagConds := make([]string, 0, len(q.Tags))
		for _, tag := range q.Tags {
			args = append(args, "%,"+escapeLike(tag)+",%")
			tagConds = append(tagConds, fmt.Sprintf("',' || tags || ',' LIKE $%d ESCAPE '\\'", len(args)))
		}
		conds = append(conds, "("+strings.Join(tagConds, " OR ")+")")
	}

	return strings.Join(conds, " AND "), args
}

// escapeLike neutralizes LIKE metacharacters so user input matches
// literally. A search for "100%" must not match everything.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// sortColumn whitelists the sort field; anything unrecognized falls back to
// created_at.
func sortColumn(field string) string {
	switch field {
	case "created_at", "updated_at", "title", "priority", "stage":
		return field
	}
	return "created_at"
}

func sortDirection(order string) string {
	if strings.EqualFold(order, "asc") {
		return "ASC"
	}
	return "DESC"
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanIdea(row rowScanner) (*model.Idea, error) {
	var idea model.Idea
	var notes sql.NullString
	var tags string
	var due sql.NullTime
	err := row.Scan(&idea.ID, &idea.UserID, &idea.Title, &notes, &idea.Stage, &idea.Priority,
		&tags, &due, &idea.CreatedAt, &idea.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if notes.Valid {
		idea.Notes = &notes.String
	}
	if due.Valid {
		t := due.Time.UTC()
		idea.DueDate = &t
	}
	idea.Tags = model.TagsFromString(tags)
	idea.CreatedAt = idea.CreatedAt.UTC()
	idea.UpdatedAt = idea.UpdatedAt.UTC()
	return &idea, nil
}
