package api_test

import (
	"net/http"
	"testing"

	"github.com/joestump/joe-marks/internal/api"
	"github.com/joestump/joe-marks/internal/auth"
	"github.com/joestump/joe-marks/internal/config"
	"github.com/joestump/joe-marks/internal/logger"
	"github.com/joestump/joe-marks/internal/store"
	"github.com/joestump/joe-marks/internal/testutil"
)

const testToken = "test-api-token"

// testEnv holds the router and store needed for API integration tests.
type testEnv struct {
	Router    http.Handler
	Bookmarks *store.BookmarkStore
}

// newTestEnv creates an in-memory SQLite test database, runs migrations,
// and wires up the API router with a real store.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	bookmarks := store.NewBookmarkStore(db)

	cfg := &config.Config{Env: "test"}
	cfg.API.Token = testToken

	router := api.NewAPIRouter(api.Deps{
		Auth:      auth.NewStaticTokenMiddleware(testToken),
		Bookmarks: bookmarks,
		Log:       logger.Nop(),
		Config:    cfg,
	})
	return &testEnv{Router: router, Bookmarks: bookmarks}
}

// authRequest adds the Bearer token to the request.
func authRequest(r *http.Request, token string) *http.Request {
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}
