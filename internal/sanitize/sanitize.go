// Package sanitize neutralizes HTML markup in user-supplied text before it
// leaves the service. Stored values are untouched; sanitization happens on
// the way out.
package sanitize

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/joestump/joe-marks/internal/store"
)

// Text strips HTML markup from s. Element tags, comments, and doctypes are
// dropped; text inside script and style elements is dropped with them. Text
// content is kept as raw bytes, so entities pass through untouched.
//
// Stripping repeats until a pass changes nothing. A single pass is not
// enough: dropping a tag can splice surrounding text into a new tag
// (`<<b>script>` becomes `<script>` once the `<b>` is gone). The fixpoint
// also makes Text idempotent: sanitizing sanitized text yields the same
// text.
func Text(s string) string {
	for {
		next := strip(s)
		if next == s {
			return next
		}
		s = next
	}
}

// strip runs one tokenizer pass over s. Its output is always a subsequence
// of its input, so repeated application terminates.
func strip(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}

	z := html.NewTokenizer(strings.NewReader(s))
	var out strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return out.String()
		case html.StartTagToken:
			if name, _ := z.TagName(); dropContent(name) {
				skip++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); dropContent(name) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				out.Write(z.Raw())
			}
		}
	}
}

// dropContent reports whether the element's text content is unsafe to keep.
func dropContent(name []byte) bool {
	return string(name) == "script" || string(name) == "style"
}

// Bookmark returns a copy of b with Title and Description sanitized.
func Bookmark(b store.Bookmark) store.Bookmark {
	b.Title = Text(b.Title)
	b.Description = Text(b.Description)
	return b
}
