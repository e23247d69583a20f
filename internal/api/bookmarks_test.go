package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joestump/joe-marks/internal/api"
	"github.com/joestump/joe-marks/internal/store"
)

func seedBookmark(t *testing.T, env *testEnv) *store.Bookmark {
	t.Helper()
	b, err := env.Bookmarks.Insert(context.Background(), store.Bookmark{
		Title:       "Example",
		URL:         "https://example.com",
		Description: "An example bookmark",
		Rating:      4,
	})
	if err != nil {
		t.Fatalf("seed bookmark: %v", err)
	}
	return b
}

func doJSON(t *testing.T, env *testEnv, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	authRequest(req, testToken)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp api.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return resp.Error.Message
}

func TestBookmarks_List_OK(t *testing.T) {
	env := newTestEnv(t)
	seedBookmark(t, env)

	rec := doJSON(t, env, "GET", "/bookmarks", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp []store.Bookmark
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp) != 1 {
		t.Errorf("len = %d, want 1", len(resp))
	}
}

func TestBookmarks_List_Empty(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, "GET", "/bookmarks", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	// Empty list is a bare JSON array, not null or a wrapper object.
	if got := bytes.TrimSpace(rec.Body.Bytes()); string(got) != "[]" {
		t.Errorf("body = %s, want []", got)
	}
}

func TestBookmarks_Get_OK(t *testing.T) {
	env := newTestEnv(t)
	created := seedBookmark(t, env)

	rec := doJSON(t, env, "GET", fmt.Sprintf("/bookmarks/%d", created.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp store.Bookmark
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp != *created {
		t.Errorf("bookmark = %+v, want %+v", resp, created)
	}
}

func TestBookmarks_Get_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, "GET", "/bookmarks/9999", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if msg := errorMessage(t, rec); msg != "Bookmark Not Found" {
		t.Errorf("message = %q, want %q", msg, "Bookmark Not Found")
	}
}

func TestBookmarks_Get_NonNumericID(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, "GET", "/bookmarks/abc", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestBookmarks_Create_Created(t *testing.T) {
	env := newTestEnv(t)

	body := `{"title":"New","url":"https://example.com/new","description":"fresh","rating":2.5}`
	rec := doJSON(t, env, "POST", "/bookmarks", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp store.Bookmark
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID == 0 {
		t.Error("expected assigned id in response")
	}
	if resp.Title != "New" || resp.URL != "https://example.com/new" || resp.Rating != 2.5 {
		t.Errorf("created = %+v", resp)
	}

	wantLoc := fmt.Sprintf("/api/bookmarks/%d", resp.ID)
	if loc := rec.Header().Get("Location"); loc != wantLoc {
		t.Errorf("Location = %q, want %q", loc, wantLoc)
	}

	// Fetching by the returned id yields a record equal to the response.
	got, err := env.Bookmarks.GetByID(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if *got != resp {
		t.Errorf("stored = %+v, want %+v", got, resp)
	}
}

func TestBookmarks_Create_MissingFieldOrder(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		body string
		want string
	}{
		{`{}`, "'title' is required"},
		{`{"url":"https://example.com","rating":1}`, "'title' is required"},
		{`{"title":"t","rating":1}`, "'url' is required"},
		{`{"title":"t","url":"https://example.com"}`, "'rating' is required"},
	}
	for _, tt := range tests {
		rec := doJSON(t, env, "POST", "/bookmarks", tt.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("POST %s: status = %d, want %d", tt.body, rec.Code, http.StatusBadRequest)
			continue
		}
		if msg := errorMessage(t, rec); msg != tt.want {
			t.Errorf("POST %s: message = %q, want %q", tt.body, msg, tt.want)
		}
	}
}

func TestBookmarks_Create_InvalidRating(t *testing.T) {
	env := newTestEnv(t)

	for _, body := range []string{
		`{"title":"t","url":"https://example.com","rating":6}`,
		`{"title":"t","url":"https://example.com","rating":-0.5}`,
		`{"title":"t","url":"https://example.com","rating":"five"}`,
	} {
		rec := doJSON(t, env, "POST", "/bookmarks", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("POST %s: status = %d, want 400", body, rec.Code)
			continue
		}
		if msg := errorMessage(t, rec); msg != "'rating' must be a number between 0 and 5" {
			t.Errorf("POST %s: message = %q", body, msg)
		}
	}
}

func TestBookmarks_Create_InvalidURL(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, "POST", "/bookmarks", `{"title":"t","url":"htp://example.com","rating":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "'url' must be a valid URL" {
		t.Errorf("message = %q", msg)
	}
}

func TestBookmarks_Create_NoBody(t *testing.T) {
	env := newTestEnv(t)

	// An absent body behaves like {}: the first missing field names the
	// error, not a generic bad-body message.
	rec := doJSON(t, env, "POST", "/bookmarks", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "'title' is required" {
		t.Errorf("message = %q, want %q", msg, "'title' is required")
	}
}

func TestBookmarks_Update_NoBody(t *testing.T) {
	env := newTestEnv(t)
	created := seedBookmark(t, env)

	rec := doJSON(t, env, "PATCH", fmt.Sprintf("/bookmarks/%d", created.ID), "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	want := "Request body must contain either 'title', 'url', 'description', or 'rating'"
	if msg := errorMessage(t, rec); msg != want {
		t.Errorf("message = %q, want %q", msg, want)
	}
}

func TestBookmarks_Create_MalformedBody(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, "POST", "/bookmarks", `{"title":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "invalid request body" {
		t.Errorf("message = %q", msg)
	}
}

func TestBookmarks_Create_SanitizesResponse(t *testing.T) {
	env := newTestEnv(t)

	body := `{"title":"Naughty <script>alert('xss');</script>","url":"https://example.com","description":"Bad image <img src=\"https://url.to.file.which/does-not.exist\">","rating":1}`
	rec := doJSON(t, env, "POST", "/bookmarks", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}

	var resp store.Bookmark
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Title != "Naughty " {
		t.Errorf("title = %q, want %q", resp.Title, "Naughty ")
	}
	if resp.Description != "Bad image " {
		t.Errorf("description = %q, want %q", resp.Description, "Bad image ")
	}

	// Reads sanitize too.
	rec = doJSON(t, env, "GET", fmt.Sprintf("/bookmarks/%d", resp.ID), "")
	var got store.Bookmark
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Title != "Naughty " || got.Description != "Bad image " {
		t.Errorf("read back = %+v, want sanitized fields", got)
	}
}

func TestBookmarks_Update_NoContent(t *testing.T) {
	env := newTestEnv(t)
	created := seedBookmark(t, env)

	rec := doJSON(t, env, "PATCH", fmt.Sprintf("/bookmarks/%d", created.ID), `{"title":"Renamed"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusNoContent, rec.Body.String())
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}

	got, err := env.Bookmarks.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Renamed" {
		t.Errorf("title = %q, want Renamed", got.Title)
	}
	// Only title changed.
	if got.URL != created.URL || got.Description != created.Description || got.Rating != created.Rating {
		t.Errorf("unpatched fields changed: %+v, want %+v", got, created)
	}
}

func TestBookmarks_Update_Empty(t *testing.T) {
	env := newTestEnv(t)
	created := seedBookmark(t, env)

	rec := doJSON(t, env, "PATCH", fmt.Sprintf("/bookmarks/%d", created.ID), `{"owner":"bob"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	want := "Request body must contain either 'title', 'url', 'description', or 'rating'"
	if msg := errorMessage(t, rec); msg != want {
		t.Errorf("message = %q, want %q", msg, want)
	}
}

func TestBookmarks_Update_InvalidValues(t *testing.T) {
	env := newTestEnv(t)
	created := seedBookmark(t, env)
	path := fmt.Sprintf("/bookmarks/%d", created.ID)

	rec := doJSON(t, env, "PATCH", path, `{"rating":9}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("rating=9: status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, env, "PATCH", path, `{"url":"htp://nope"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad url: status = %d, want 400", rec.Code)
	}
}

func TestBookmarks_Update_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, "PATCH", "/bookmarks/9999", `{"title":"Ghost"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "Bookmark Not Found" {
		t.Errorf("message = %q", msg)
	}
}

func TestBookmarks_Delete_NoContent(t *testing.T) {
	env := newTestEnv(t)
	created := seedBookmark(t, env)
	path := fmt.Sprintf("/bookmarks/%d", created.ID)

	rec := doJSON(t, env, "DELETE", path, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204; body: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}

	// A subsequent GET of that id is a 404.
	rec = doJSON(t, env, "GET", path, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET after delete: status = %d, want 404", rec.Code)
	}
}

func TestBookmarks_Delete_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, "DELETE", "/bookmarks/9999", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "Bookmark Not Found" {
		t.Errorf("message = %q", msg)
	}
}

func TestBookmarks_Unauthorized_BeforeStorage(t *testing.T) {
	env := newTestEnv(t)

	// A write request without a token is rejected without touching storage.
	body := `{"title":"t","url":"https://example.com","rating":1}`
	req := httptest.NewRequest("POST", "/bookmarks", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	n, err := env.Bookmarks.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Errorf("rows = %d, want 0 (no mutation before auth)", n)
	}
}

func TestBookmarks_Unauthorized_AllRoutes(t *testing.T) {
	env := newTestEnv(t)

	for _, tt := range []struct{ method, path string }{
		{"GET", "/bookmarks"},
		{"GET", "/bookmarks/1"},
		{"POST", "/bookmarks"},
		{"PATCH", "/bookmarks/1"},
		{"DELETE", "/bookmarks/1"},
	} {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rec := httptest.NewRecorder()
		env.Router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401", tt.method, tt.path, rec.Code)
		}
	}
}
