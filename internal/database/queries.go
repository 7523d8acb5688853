package database

import (
	"context"
	"database/sql"
	"fmt"
	"html"
	"time"

	"github.com/google/uuid"
)

// InsertIfAbsent inserts a recipe unless one already exists for its
// (message_id, url) pair, and reports whether a row was written. A false
// return is not an error: it means an earlier run (or an earlier email in
// this run) already recorded the recipe. Titles are stored with HTML
// entities decoded.
func (db *DB) InsertIfAbsent(ctx context.Context, r *Recipe) (bool, error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.Title = html.UnescapeString(r.Title)

	result, err := db.ExecContext(ctx, `
		INSERT OR IGNORE INTO recipes (
			id, message_id, source, title, url, parent_url, homepage, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.ID, r.MessageID, r.Source, r.Title, r.URL,
		NullString(r.ParentURL), NullString(r.Homepage), r.CreatedAt,
	)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// GetRecipe retrieves a recipe by ID, or nil when not found.
func (db *DB) GetRecipe(ctx context.Context, id string) (*Recipe, error) {
	r := &Recipe{}
	var parentURL, homepage sql.NullString

	err := db.QueryRowContext(ctx, `
		SELECT id, message_id, source, title, url, parent_url, homepage, created_at
		FROM recipes WHERE id = ?
	`, id).Scan(
		&r.ID, &r.MessageID, &r.Source, &r.Title, &r.URL,
		&parentURL, &homepage, &r.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.ParentURL = StringPtr(parentURL)
	r.Homepage = StringPtr(homepage)
	return r, nil
}

// ListRecipes retrieves recipes with optional filters, newest first.
func (db *DB) ListRecipes(ctx context.Context, opts ListOptions) ([]Recipe, error) {
	query := `
		SELECT id, message_id, source, title, url, parent_url, homepage, created_at
		FROM recipes WHERE 1=1
	`
	args := []interface{}{}

	if opts.Search != "" {
		query += " AND (title LIKE ? OR url LIKE ?)"
		like := "%" + opts.Search + "%"
		args = append(args, like, like)
	}
	if opts.Source != "" {
		query += " AND source = ?"
		args = append(args, opts.Source)
	}

	query += " ORDER BY created_at DESC"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
		if opts.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", opts.Offset)
		}
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecipes(rows)
}

// Search is shorthand for a LIKE search over title and url.
func (db *DB) Search(ctx context.Context, q string) ([]Recipe, error) {
	return db.ListRecipes(ctx, ListOptions{Search: q})
}

// GetStats computes aggregate statistics over the store.
func (db *DB) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{BySource: make(map[string]int)}

	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(parent_url),
		       COALESCE(SUM(CASE WHEN message_id = ? THEN 1 ELSE 0 END), 0)
		FROM recipes
	`, ManualMessageID).Scan(&stats.TotalRecipes, &stats.LandingPages, &stats.ManualAdds)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT source, COUNT(*) FROM recipes GROUP BY source ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var source string
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			return nil, err
		}
		stats.BySource[source] = count
	}
	return stats, rows.Err()
}

func scanRecipes(rows *sql.Rows) ([]Recipe, error) {
	var recipes []Recipe
	for rows.Next() {
		var r Recipe
		var parentURL, homepage sql.NullString

		if err := rows.Scan(
			&r.ID, &r.MessageID, &r.Source, &r.Title, &r.URL,
			&parentURL, &homepage, &r.CreatedAt,
		); err != nil {
			return nil, err
		}

		r.ParentURL = StringPtr(parentURL)
		r.Homepage = StringPtr(homepage)
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}
