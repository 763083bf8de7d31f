package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sitecms/internal/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	return r
}

func TestGridColumnsFallsBackToThree(t *testing.T) {
	cases := map[int]int{0: 3, 1: 1, 2: 2, 3: 3, 4: 4, 5: 3, -1: 3, 12: 3}
	for in, want := range cases {
		assert.Equal(t, want, GridColumns(in), "GridColumns(%d)", in)
	}
}

func TestRenderGridLayoutOutOfRangeColumns(t *testing.T) {
	r := newTestRenderer(t)

	out := string(r.RenderSection(content.Section{Data: content.GridLayout{
		Columns: 5,
		Items:   []content.GridItem{{Title: "One"}, {Title: "Two"}},
	}}))

	assert.Contains(t, out, "grid-cols-3")
	assert.NotContains(t, out, "grid-cols-5")
	assert.Contains(t, out, "One")
}

func TestRenderUnknownKindIsEmpty(t *testing.T) {
	r := newTestRenderer(t)

	out := r.RenderSection(content.Section{ID: "x", Data: content.Unknown{Type: "carousel", Data: []byte(`{}`)}})
	assert.Empty(t, out)
	assert.Empty(t, r.RenderSection(content.Section{}))
}

func TestRenderEachKnownKind(t *testing.T) {
	r := newTestRenderer(t)

	cases := []struct {
		payload content.Payload
		want    string
	}{
		{content.HeaderBanner{Title: "Welcome", CTALabel: "Go", CTALink: "/contact"}, `href="/contact"`},
		{content.TextBlock{Body: "Hello **world**", Alignment: "center"}, "<strong>world</strong>"},
		{content.ImageText{Heading: "Side", Image: content.Media{File: "https://cdn.example.com/a.jpg"}, ImagePosition: "right"}, "image-right"},
		{content.BottomMedia{Media: content.Media{File: "https://cdn.example.com/v.mp4"}, MediaType: "video"}, "<video"},
		{content.BottomMedia{Media: content.Media{File: "https://youtu.be/abc"}, MediaType: "video"}, "https://www.youtube-nocookie.com/embed/abc"},
	}

	for _, tc := range cases {
		out := string(r.RenderSection(content.Section{Data: tc.payload}))
		assert.Contains(t, out, tc.want, "kind %s", tc.payload.Kind())
	}
}

func TestMarkdownIsSanitized(t *testing.T) {
	r := newTestRenderer(t)

	out := string(r.Markdown("Hi <script>alert(1)</script> [x](javascript:alert(1))"))
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, "Hi")
}

func TestSectionsKeysFallBackToPosition(t *testing.T) {
	r := newTestRenderer(t)

	rendered := r.Sections([]content.Section{
		{ID: "a", Data: content.TextBlock{Body: "one"}},
		{ID: "", Data: content.TextBlock{Body: "two"}},
		{ID: "a", Data: content.TextBlock{Body: "three"}},
		{ID: "b", Data: content.Unknown{Type: "mystery"}},
	})

	require.Len(t, rendered, 4)
	keys := []string{rendered[0].Key, rendered[1].Key, rendered[2].Key, rendered[3].Key}
	assert.Equal(t, []string{"a", "section-1", "section-2", "b"}, keys)
	assert.Contains(t, string(rendered[2].HTML), "three")
	assert.Empty(t, rendered[3].HTML)
}

func TestPageRendersInsideLayout(t *testing.T) {
	r := newTestRenderer(t)

	var buf bytes.Buffer
	err := r.Page(&buf, PageCustom, map[string]any{
		"siteName": "Acme",
		"title":    "Services",
		"page":     map[string]any{"Slug": "services"},
		"sections": r.Sections([]content.Section{{ID: "intro", Data: content.TextBlock{Body: "We clean."}}}),
	})
	require.NoError(t, err)

	html := buf.String()
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>Services | Acme</title>")
	assert.Contains(t, html, `data-key="intro"`)
	assert.Contains(t, html, "We clean.")
}

func TestEveryPageRendersWithMinimalData(t *testing.T) {
	r := newTestRenderer(t)

	for _, name := range pageNames {
		var buf bytes.Buffer
		err := r.Page(&buf, name, map[string]any{
			"siteName": "Acme",
			"homepage": content.DefaultHomepage(),
			"about":    content.DefaultAbout(),
		})
		require.NoError(t, err, "page %s", name)
	}

	require.Error(t, r.Page(&bytes.Buffer{}, "missing", nil))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "12.50", FormatPrice(1250))
	assert.Equal(t, "0.05", FormatPrice(5))
	assert.Equal(t, "-1.00", FormatPrice(-100))
}
