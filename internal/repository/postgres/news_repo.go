package postgres

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"internmatch-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type newsRepo struct {
	db *pgxpool.Pool
}

// NewNewsRepository creates a new news repository
func NewNewsRepository(db *pgxpool.Pool) domain.NewsRepository {
	return &newsRepo{db: db}
}

// List pages news most-recent-first, keyed on (iso_date, id).
func (r *newsRepo) List(ctx context.Context, cursor string, limit int) (*domain.NewsPage, error) {
	if limit < 1 {
		limit = 20
	}

	query := `
		SELECT id, title, link, source, date, iso_date, snippet, thumbnail, favicon
		FROM news`
	var args []interface{}

	if cursor != "" {
		raw, err := base64.URLEncoding.DecodeString(cursor)
		if err != nil {
			return nil, ErrInvalidCursor
		}
		parts := strings.SplitN(string(raw), "|", 2)
		if len(parts) != 2 {
			return nil, ErrInvalidCursor
		}
		query += " WHERE (iso_date, id) < ($1, $2)"
		args = append(args, parts[0], parts[1])
	}

	query += fmt.Sprintf(" ORDER BY iso_date DESC, id DESC LIMIT $%d", len(args)+1)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.News
	for rows.Next() {
		var n domain.News
		if err := rows.Scan(&n.ID, &n.Title, &n.Link, &n.Source, &n.Date, &n.ISODate, &n.Snippet, &n.Thumbnail, &n.Favicon); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	page := &domain.NewsPage{News: items}
	if len(items) == limit {
		last := items[len(items)-1]
		page.Cursor = base64.URLEncoding.EncodeToString([]byte(last.ISODate + "|" + last.ID))
	}
	return page, nil
}
