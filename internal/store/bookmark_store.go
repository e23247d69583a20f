package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Bookmark represents a row in the bookmarks table.
type Bookmark struct {
	ID          int64   `db:"id" json:"id"`
	Title       string  `db:"title" json:"title"`
	URL         string  `db:"url" json:"url"`
	Description string  `db:"description" json:"description"`
	Rating      float64 `db:"rating" json:"rating"`
}

// BookmarkPatch holds the subset of bookmark fields to change in a partial
// update. A nil field is left untouched.
type BookmarkPatch struct {
	Title       *string
	URL         *string
	Description *string
	Rating      *float64
}

// Empty reports whether the patch changes nothing.
func (p BookmarkPatch) Empty() bool {
	return p.Title == nil && p.URL == nil && p.Description == nil && p.Rating == nil
}

// BookmarkStore is the sqlx-backed implementation of BookmarkStoreIface.
type BookmarkStore struct {
	db *sqlx.DB
}

func NewBookmarkStore(db *sqlx.DB) *BookmarkStore {
	return &BookmarkStore{db: db}
}

// ListAll returns all bookmarks in storage order (id ASC).
func (s *BookmarkStore) ListAll(ctx context.Context) ([]*Bookmark, error) {
	bookmarks := []*Bookmark{}
	err := s.db.SelectContext(ctx, &bookmarks, `SELECT * FROM bookmarks ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return bookmarks, nil
}

// GetByID returns the bookmark matching id, or ErrNotFound.
func (s *BookmarkStore) GetByID(ctx context.Context, id int64) (*Bookmark, error) {
	var b Bookmark
	err := s.db.GetContext(ctx, &b, s.db.Rebind(`SELECT * FROM bookmarks WHERE id = ?`), id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get bookmark %d: %w", id, err)
	}
	return &b, nil
}

// Insert persists a new bookmark and returns it with the assigned id.
func (s *BookmarkStore) Insert(ctx context.Context, b Bookmark) (*Bookmark, error) {
	var id int64
	if s.db.DriverName() == "postgres" {
		// lib/pq does not support LastInsertId.
		err := s.db.QueryRowxContext(ctx, s.db.Rebind(`
			INSERT INTO bookmarks (title, url, description, rating)
			VALUES (?, ?, ?, ?) RETURNING id
		`), b.Title, b.URL, b.Description, b.Rating).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("insert bookmark: %w", err)
		}
	} else {
		res, err := s.db.ExecContext(ctx, s.db.Rebind(`
			INSERT INTO bookmarks (title, url, description, rating)
			VALUES (?, ?, ?, ?)
		`), b.Title, b.URL, b.Description, b.Rating)
		if err != nil {
			return nil, fmt.Errorf("insert bookmark: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("insert bookmark id: %w", err)
		}
	}

	return s.GetByID(ctx, id)
}

// Update applies the non-nil fields of patch to the bookmark matching id.
// Returns ErrNotFound if no such row exists. Existence is checked with a
// SELECT rather than RowsAffected because MySQL reports zero affected rows
// when the new values equal the old ones.
func (s *BookmarkStore) Update(ctx context.Context, id int64, patch BookmarkPatch) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.URL != nil {
		sets = append(sets, "url = ?")
		args = append(args, *patch.URL)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Rating != nil {
		sets = append(sets, "rating = ?")
		args = append(args, *patch.Rating)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	query := s.db.Rebind(`UPDATE bookmarks SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update bookmark %d: %w", id, err)
	}
	return nil
}

// DeleteByID removes the bookmark matching id, or returns ErrNotFound.
func (s *BookmarkStore) DeleteByID(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM bookmarks WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete bookmark %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete bookmark %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of bookmarks in the table.
func (s *BookmarkStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM bookmarks`); err != nil {
		return 0, fmt.Errorf("count bookmarks: %w", err)
	}
	return n, nil
}
