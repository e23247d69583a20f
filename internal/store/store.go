package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested bookmark does not exist.
var ErrNotFound = errors.New("not found")

// BookmarkStoreIface exposes all bookmark data operations.
// No handler may query the DB directly; all access goes through this interface.
type BookmarkStoreIface interface {
	ListAll(ctx context.Context) ([]*Bookmark, error)
	GetByID(ctx context.Context, id int64) (*Bookmark, error)
	Insert(ctx context.Context, b Bookmark) (*Bookmark, error)
	Update(ctx context.Context, id int64, patch BookmarkPatch) error
	DeleteByID(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
