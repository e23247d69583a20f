// Package validate checks bookmark payloads for create and partial-update
// requests. Error strings double as the wire messages returned to clients.
package validate

import (
	"encoding/json"
	"errors"
	"net/url"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/joestump/joe-marks/internal/store"
)

var (
	// ErrTitleRequired is returned when a create payload has no title.
	ErrTitleRequired = errors.New("'title' is required")

	// ErrURLRequired is returned when a create payload has no url.
	ErrURLRequired = errors.New("'url' is required")

	// ErrRatingRequired is returned when a create payload has no rating.
	ErrRatingRequired = errors.New("'rating' is required")

	// ErrInvalidRating is returned when rating is not a JSON number in [0, 5].
	ErrInvalidRating = errors.New("'rating' must be a number between 0 and 5")

	// ErrInvalidURL is returned when url does not parse as an absolute
	// http(s) URL.
	ErrInvalidURL = errors.New("'url' must be a valid URL")

	// ErrEmptyUpdate is returned when an update payload carries none of the
	// recognized bookmark fields.
	ErrEmptyUpdate = errors.New("Request body must contain either 'title', 'url', 'description', or 'rating'")
)

// Payload is the decoded request body for create and update. Every field is
// optional; presence is non-nil (JSON null counts as absent). Rating is
// captured raw so a non-numeric rating is an invalid-rating error rather
// than a decode failure. Unknown JSON fields are dropped by the decoder.
type Payload struct {
	Title       *string         `json:"title"`
	URL         *string         `json:"url"`
	Description *string         `json:"description"`
	Rating      json.RawMessage `json:"rating"`
}

func (p *Payload) hasTitle() bool  { return p.Title != nil && *p.Title != "" }
func (p *Payload) hasURL() bool    { return p.URL != nil && *p.URL != "" }
func (p *Payload) hasRating() bool { return len(p.Rating) > 0 && string(p.Rating) != "null" }

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func v() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// required lists the create-required fields with their presence checks, in
// the order the first-missing-field error is decided.
var required = []struct {
	present func(*Payload) bool
	err     error
}{
	{(*Payload).hasTitle, ErrTitleRequired},
	{(*Payload).hasURL, ErrURLRequired},
	{(*Payload).hasRating, ErrRatingRequired},
}

// checks lists the per-field value checks, in the order they are applied to
// any present field. Shared between create and update.
var checks = []struct {
	present func(*Payload) bool
	check   func(*Payload) error
}{
	{(*Payload).hasRating, checkRating},
	{(*Payload).hasURL, checkURL},
}

func checkRating(p *Payload) error {
	var rating float64
	if err := json.Unmarshal(p.Rating, &rating); err != nil {
		return ErrInvalidRating
	}
	if err := v().Var(rating, "gte=0,lte=5"); err != nil {
		return ErrInvalidRating
	}
	return nil
}

func checkURL(p *Payload) error {
	u, err := url.Parse(*p.URL)
	if err != nil || !u.IsAbs() {
		return ErrInvalidURL
	}
	if err := v().Var(*p.URL, "http_url"); err != nil {
		return ErrInvalidURL
	}
	return nil
}

// Create validates a create payload and returns the normalized bookmark
// record. Presence checks run first in fixed field order, then value checks.
func Create(p *Payload) (store.Bookmark, error) {
	for _, f := range required {
		if !f.present(p) {
			return store.Bookmark{}, f.err
		}
	}
	for _, f := range checks {
		if err := f.check(p); err != nil {
			return store.Bookmark{}, err
		}
	}

	b := store.Bookmark{Title: *p.Title, URL: *p.URL}
	if p.Description != nil {
		b.Description = *p.Description
	}
	// checkRating already proved this parses.
	_ = json.Unmarshal(p.Rating, &b.Rating)
	return b, nil
}

// Update validates a partial-update payload and returns the subset of fields
// to apply. At least one recognized field must be present; present fields get
// the same value checks as create.
func Update(p *Payload) (store.BookmarkPatch, error) {
	if !p.hasTitle() && !p.hasURL() && p.Description == nil && !p.hasRating() {
		return store.BookmarkPatch{}, ErrEmptyUpdate
	}
	for _, f := range checks {
		if f.present(p) {
			if err := f.check(p); err != nil {
				return store.BookmarkPatch{}, err
			}
		}
	}

	patch := store.BookmarkPatch{Description: p.Description}
	if p.hasTitle() {
		patch.Title = p.Title
	}
	if p.hasURL() {
		patch.URL = p.URL
	}
	if p.hasRating() {
		var rating float64
		_ = json.Unmarshal(p.Rating, &rating)
		patch.Rating = &rating
	}
	return patch, nil
}
