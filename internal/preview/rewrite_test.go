package preview

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itzbandhan/sallukobirthday/internal/models"
)

const baseDoc = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8" />
<title>You're Invited</title>
</head>
<body></body>
</html>`

const taggedDoc = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8" />
<title>You're Invited</title>
<meta property="og:title" content="Old Title" />
<meta property="og:image" content="/old.png" />
</head>
<body></body>
</html>`

func staticLookup(r *models.Recipient) Lookup {
	return func(context.Context, string) *models.Recipient { return r }
}

func newRewriter(r *models.Recipient) *Rewriter {
	return &Rewriter{ImagePath: "/ogimg.png", Lookup: staticLookup(r)}
}

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestRewriteSingleRecipient(t *testing.T) {
	rw := newRewriter(&models.Recipient{
		InviteType: models.InviteSingle,
		NameSingle: "Asha",
	})

	out := rw.Rewrite(context.Background(), baseDoc, "asha")
	doc := parse(t, out)

	assert.Equal(t, "Asha | You're Invited", doc.Find("title").Text())

	ogTitle := doc.Find(`meta[property="og:title"]`)
	require.Equal(t, 1, ogTitle.Length())
	content, _ := ogTitle.Attr("content")
	assert.Equal(t, "Asha | You're Invited", content)

	ogImage := doc.Find(`meta[property="og:image"]`)
	require.Equal(t, 1, ogImage.Length())
	image, _ := ogImage.Attr("content")
	assert.Equal(t, "/ogimg.png", image)
}

func TestRewriteCoupleRecipient(t *testing.T) {
	rw := newRewriter(&models.Recipient{
		InviteType:   models.InviteCouple,
		NameSingle:   "ignored",
		NamePartner1: "Priya",
		NamePartner2: "Arjun",
	})

	out := rw.Rewrite(context.Background(), baseDoc, "priya-arjun")
	doc := parse(t, out)

	assert.Equal(t, "Priya & Arjun | You're Invited", doc.Find("title").Text())
}

func TestRewriteSpecialRecipientWithoutName(t *testing.T) {
	rw := newRewriter(&models.Recipient{InviteType: models.InviteSpecial})

	out := rw.Rewrite(context.Background(), baseDoc, "vip")
	doc := parse(t, out)

	assert.Equal(t, "Special Guest | You're Invited", doc.Find("title").Text())
}

func TestRewriteNotFoundPassesThrough(t *testing.T) {
	rw := newRewriter(nil)

	out := rw.Rewrite(context.Background(), baseDoc, "doesnotexist")

	assert.Equal(t, baseDoc, out, "miss must return the byte-identical document")
}

func TestRewriteNoSlugSkipsLookup(t *testing.T) {
	called := false
	rw := &Rewriter{
		ImagePath: "/ogimg.png",
		Lookup: func(context.Context, string) *models.Recipient {
			called = true
			return &models.Recipient{InviteType: models.InviteSingle, NameSingle: "Asha"}
		},
	}

	out := rw.Rewrite(context.Background(), baseDoc, "")

	assert.Equal(t, baseDoc, out)
	assert.False(t, called)
}

func TestRewriteAssetSlugSkipsLookup(t *testing.T) {
	called := false
	rw := &Rewriter{
		ImagePath: "/ogimg.png",
		Lookup: func(context.Context, string) *models.Recipient {
			called = true
			// Even an existing row named like an asset must not personalize.
			return &models.Recipient{InviteType: models.InviteSingle, NameSingle: "styles"}
		},
	}

	out := rw.Rewrite(context.Background(), baseDoc, "styles.css")

	assert.Equal(t, baseDoc, out)
	assert.False(t, called)
}

func TestRewriteReplacesExistingTagsWithoutDuplicating(t *testing.T) {
	rw := newRewriter(&models.Recipient{
		InviteType: models.InviteSingle,
		NameSingle: "Asha",
	})

	out := rw.Rewrite(context.Background(), taggedDoc, "asha")
	doc := parse(t, out)

	ogTitle := doc.Find(`meta[property="og:title"]`)
	require.Equal(t, 1, ogTitle.Length())
	content, _ := ogTitle.Attr("content")
	assert.Equal(t, "Asha | You're Invited", content)

	ogImage := doc.Find(`meta[property="og:image"]`)
	require.Equal(t, 1, ogImage.Length())
	image, _ := ogImage.Attr("content")
	assert.Equal(t, "/ogimg.png", image)

	assert.NotContains(t, out, "Old Title")
	assert.NotContains(t, out, "/old.png")
}

func TestRewriteDomainMakesImageURLAbsolute(t *testing.T) {
	rw := newRewriter(&models.Recipient{
		InviteType: models.InviteSingle,
		NameSingle: "Asha",
	})
	rw.Domain = "https://invite.example.com"

	out := rw.Rewrite(context.Background(), baseDoc, "asha")
	doc := parse(t, out)

	image, _ := doc.Find(`meta[property="og:image"]`).Attr("content")
	assert.Equal(t, "https://invite.example.com/ogimg.png", image)
}
