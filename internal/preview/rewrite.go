// Package preview rewrites the page's meta tags so link previews shared on
// social platforms carry the recipient's name instead of the generic title.
package preview

import (
	"context"
	"regexp"
	"strings"

	"github.com/itzbandhan/sallukobirthday/internal/invite"
	"github.com/itzbandhan/sallukobirthday/internal/models"
)

// Lookup fetches preview facts for a slug. A nil result means the slug has
// no usable match and the document is served untouched.
type Lookup func(ctx context.Context, slug string) *models.Recipient

// Rewriter personalizes a base HTML document per request. Stateless; one
// value can serve all requests.
type Rewriter struct {
	// Domain is the absolute-URL prefix for the og:image tag, e.g.
	// "https://example.com". Empty produces a root-relative URL.
	Domain    string
	ImagePath string
	Lookup    Lookup
}

var (
	titleRe   = regexp.MustCompile(`<title>.*?</title>`)
	ogTitleRe = regexp.MustCompile(`<meta property="og:title" content=".*?" />`)
	ogImageRe = regexp.MustCompile(`<meta property="og:image" content=".*?" />`)
)

// Rewrite returns baseHTML with the <title>, og:title and og:image tags
// personalized for slug. It never fails: an absent slug, a static-asset
// path (anything with a dot), a lookup miss or a lookup error all return
// the document unmodified.
func (rw *Rewriter) Rewrite(ctx context.Context, baseHTML, slug string) string {
	if slug == "" || strings.Contains(slug, ".") {
		return baseHTML
	}

	recipient := rw.Lookup(ctx, slug)
	if recipient == nil {
		return baseHTML
	}

	pageTitle := invite.PreviewName(recipient) + " | You're Invited"

	html := replaceFirst(titleRe, baseHTML, "<title>"+pageTitle+"</title>")

	html = upsertMeta(html, ogTitleRe, `<meta property="og:title"`,
		`<meta property="og:title" content="`+pageTitle+`" />`)

	html = upsertMeta(html, ogImageRe, `<meta property="og:image"`,
		`<meta property="og:image" content="`+rw.Domain+rw.ImagePath+`" />`)

	return html
}

// replaceFirst substitutes only the first match, leaving any duplicates of
// the tag alone.
func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}

// upsertMeta replaces an existing tag in place or injects a new one just
// before the closing head marker.
func upsertMeta(html string, re *regexp.Regexp, marker, tag string) string {
	if strings.Contains(html, marker) {
		return replaceFirst(re, html, tag)
	}
	return strings.Replace(html, "</head>", tag+"\n</head>", 1)
}
