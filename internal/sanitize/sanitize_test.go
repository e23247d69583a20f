package sanitize_test

import (
	"testing"

	"github.com/joestump/joe-marks/internal/sanitize"
	"github.com/joestump/joe-marks/internal/store"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "just a title", "just a title"},
		{"empty", "", ""},
		{"script stripped with content", "Naughty <script>alert('xss');</script>", "Naughty "},
		{"img stripped", `Bad image <img src="https://url.to.file.which/does-not.exist">`, "Bad image "},
		{"style stripped with content", "a<style>body{color:red}</style>b", "ab"},
		{"nested markup", "<div><b>bold</b> text</div>", "bold text"},
		{"comment dropped", "before<!-- hidden -->after", "beforeafter"},
		{"entities untouched", "a &amp; b", "a &amp; b"},
		{"bare less-than kept", "1 < 2", "1 < 2"},
		{"event handler attr gone", `<a href="#" onclick="steal()">click</a>`, "click"},
		{"split tags cannot reassemble", "<<b>script>alert('xss')<</b>/script>", ""},
		{"split img reassembles then dies", `<<i>img src="x" onerror="steal()"</i>>`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitize.Text(tt.in); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestText_Idempotent(t *testing.T) {
	inputs := []string{
		"Naughty <script>alert('xss');</script>",
		`Bad image <img src="https://url.to.file.which/does-not.exist">`,
		"plain",
		"a &lt;script&gt; b",
		"1 < 2 and 3 > 2",
		"<<b>script>alert('xss')<</b>/script>",
		`<<i>img src="x" onerror="steal()"</i>>`,
	}
	for _, in := range inputs {
		once := sanitize.Text(in)
		twice := sanitize.Text(once)
		if once != twice {
			t.Errorf("Text not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestBookmark(t *testing.T) {
	b := store.Bookmark{
		ID:          7,
		Title:       "Naughty <script>alert('xss');</script>",
		URL:         "https://example.com",
		Description: `Bad image <img src="https://url.to.file.which/does-not.exist">`,
		Rating:      3,
	}

	got := sanitize.Bookmark(b)

	if got.Title != "Naughty " {
		t.Errorf("title = %q, want %q", got.Title, "Naughty ")
	}
	if got.Description != "Bad image " {
		t.Errorf("description = %q, want %q", got.Description, "Bad image ")
	}
	// Only the free-text fields change.
	if got.ID != b.ID || got.URL != b.URL || got.Rating != b.Rating {
		t.Errorf("non-text fields changed: %+v", got)
	}
	// The input is copied, not mutated.
	if b.Title != "Naughty <script>alert('xss');</script>" {
		t.Errorf("input mutated: %q", b.Title)
	}
}
