package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/joestump/joe-marks/internal/logger"
	"github.com/joestump/joe-marks/internal/metrics"
	"github.com/joestump/joe-marks/internal/sanitize"
	"github.com/joestump/joe-marks/internal/store"
	"github.com/joestump/joe-marks/internal/validate"
)

const msgNotFound = "Bookmark Not Found"

// bookmarksAPIHandler provides REST handlers for bookmark management.
type bookmarksAPIHandler struct {
	bookmarks  *store.BookmarkStore
	log        logger.Logger
	production bool
}

// registerBookmarkRoutes registers the bookmark CRUD routes on r.
func registerBookmarkRoutes(r chi.Router, deps Deps) {
	h := &bookmarksAPIHandler{
		bookmarks:  deps.Bookmarks,
		log:        deps.Log,
		production: deps.Config.Production(),
	}
	r.Get("/bookmarks", h.List)
	r.Post("/bookmarks", h.Create)
	r.Get("/bookmarks/{id}", h.Get)
	r.Patch("/bookmarks/{id}", h.Update)
	r.Delete("/bookmarks/{id}", h.Delete)
}

// parseID reads the {id} route parameter. A non-numeric id behaves exactly
// like a missing row: 404, storage untouched.
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// decodePayload decodes the request body into a partial bookmark payload.
// Unknown fields are silently dropped. A zero-byte body decodes as {}, so
// the field-presence errors apply instead of a generic bad-body error;
// truncated JSON (io.ErrUnexpectedEOF) is still a decode failure.
func decodePayload(r *http.Request) (*validate.Payload, error) {
	var p validate.Payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &p, nil
}

// List returns every bookmark, sanitized.
// GET /api/bookmarks
//
// @Summary      List bookmarks
// @Description  Returns all bookmarks in storage order.
// @Tags         Bookmarks
// @Produce      json
// @Success      200  {array}   store.Bookmark
// @Failure      401  {object}  UnauthorizedResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks [get]
func (h *bookmarksAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := h.bookmarks.ListAll(r.Context())
	if err != nil {
		writeServerError(w, h.log, err, h.production)
		return
	}

	resp := make([]store.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		resp = append(resp, sanitize.Bookmark(*b))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single bookmark by id, sanitized.
// GET /api/bookmarks/{id}
//
// @Summary      Get a bookmark
// @Tags         Bookmarks
// @Produce      json
// @Param        id   path      int  true  "Bookmark ID"
// @Success      200  {object}  store.Bookmark
// @Failure      401  {object}  UnauthorizedResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks/{id} [get]
func (h *bookmarksAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}

	b, err := h.bookmarks.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		writeServerError(w, h.log, err, h.production)
		return
	}

	writeJSON(w, http.StatusOK, sanitize.Bookmark(*b))
}

// Create validates and persists a new bookmark.
// POST /api/bookmarks
//
// @Summary      Create a bookmark
// @Description  Requires title, url, and a rating between 0 and 5.
// @Tags         Bookmarks
// @Accept       json
// @Produce      json
// @Param        body  body      validate.Payload  true  "Bookmark to create"
// @Success      201   {object}  store.Bookmark
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  UnauthorizedResponse
// @Failure      500   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks [post]
func (h *bookmarksAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := decodePayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := validate.Create(p)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.bookmarks.Insert(r.Context(), record)
	if err != nil {
		writeServerError(w, h.log, err, h.production)
		return
	}
	h.refreshBookmarksGauge(r.Context())

	w.Header().Set("Location", fmt.Sprintf("/api/bookmarks/%d", created.ID))
	writeJSON(w, http.StatusCreated, sanitize.Bookmark(*created))
}

// Update applies a partial update to a bookmark.
// PATCH /api/bookmarks/{id}
//
// @Summary      Update a bookmark
// @Description  Applies only the supplied fields. At least one of title, url, description, or rating is required.
// @Tags         Bookmarks
// @Accept       json
// @Param        id    path  int               true  "Bookmark ID"
// @Param        body  body  validate.Payload  true  "Fields to change"
// @Success      204   "No Content"
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  UnauthorizedResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks/{id} [patch]
func (h *bookmarksAPIHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}

	p, err := decodePayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch, err := validate.Update(p)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.bookmarks.Update(r.Context(), id, patch)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		writeServerError(w, h.log, err, h.production)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a bookmark by id.
// DELETE /api/bookmarks/{id}
//
// @Summary      Delete a bookmark
// @Tags         Bookmarks
// @Param        id  path  int  true  "Bookmark ID"
// @Success      204  "No Content"
// @Failure      401  {object}  UnauthorizedResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks/{id} [delete]
func (h *bookmarksAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}

	err := h.bookmarks.DeleteByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		writeServerError(w, h.log, err, h.production)
		return
	}
	h.refreshBookmarksGauge(r.Context())

	w.WriteHeader(http.StatusNoContent)
}

// refreshBookmarksGauge re-counts the table after a write. Failures are
// logged and otherwise ignored.
func (h *bookmarksAPIHandler) refreshBookmarksGauge(ctx context.Context) {
	n, err := h.bookmarks.Count(ctx)
	if err != nil {
		h.log.Error("refresh bookmarks gauge", logger.Error(err))
		return
	}
	metrics.BookmarksTotal.Set(float64(n))
}
