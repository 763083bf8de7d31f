// Package render turns stored content into HTML for the public site.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sitecms/internal/content"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.html
var templateFS embed.FS

// Pages that can be passed to Renderer.Page.
const (
	PageHome     = "home"
	PageAbout    = "about"
	PageProducts = "products"
	PageBlogList = "blog_list"
	PageBlogPost = "blog_post"
	PageCustom   = "custom_page"
	PageDocument = "document"
	PageNotFound = "not_found"
)

const defaultColumns = 3

var pageNames = []string{
	PageHome,
	PageAbout,
	PageProducts,
	PageBlogList,
	PageBlogPost,
	PageCustom,
	PageDocument,
	PageNotFound,
}

// Rendered is one section of a custom page ready to be placed in a list.
// Key is unique within the page.
type Rendered struct {
	Key  string
	Kind content.Kind
	HTML template.HTML
}

// Renderer holds the parsed templates and the markdown pipeline.
type Renderer struct {
	pages    map[string]*template.Template
	sections *template.Template
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	r := &Renderer{
		pages: make(map[string]*template.Template, len(pageNames)),
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
			goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
		),
		policy: bluemonday.UGCPolicy(),
	}
	funcs := r.funcMap()

	sections, err := template.New("sections").Funcs(funcs).ParseFS(templateFS, "templates/sections.html")
	if err != nil {
		return nil, fmt.Errorf("parse section templates: %w", err)
	}
	r.sections = sections

	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			path.Join("templates", name+".html"),
		)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// MustNew is New for package-level setup; it panics on a template error.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Page executes the named page inside the shared layout.
func (r *Renderer) Page(w io.Writer, name string, data any) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("render: unknown page %q", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

// Markdown converts src to sanitized HTML.
func (r *Renderer) Markdown(src string) template.HTML {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes()))
}

// RenderSection renders a single section. Unknown kinds and sections that
// fail to render produce no output.
func (r *Renderer) RenderSection(section content.Section) template.HTML {
	out, err := r.renderSection(section)
	if err != nil {
		return ""
	}
	return out
}

// Sections renders every section in order. Keys come from section ids; an
// empty or repeated id falls back to the section's position.
func (r *Renderer) Sections(sections []content.Section) []Rendered {
	out := make([]Rendered, 0, len(sections))
	seen := make(map[string]struct{}, len(sections))
	for i, section := range sections {
		key := strings.TrimSpace(section.ID)
		if _, dup := seen[key]; key == "" || dup {
			key = "section-" + strconv.Itoa(i)
			for n := 1; ; n++ {
				if _, taken := seen[key]; !taken {
					break
				}
				key = "section-" + strconv.Itoa(i) + "-" + strconv.Itoa(n)
			}
		}
		seen[key] = struct{}{}

		out = append(out, Rendered{
			Key:  key,
			Kind: section.Kind(),
			HTML: r.RenderSection(section),
		})
	}
	return out
}

// GridColumns clamps a stored column count to what the grid styles support.
func GridColumns(columns int) int {
	if columns < 1 || columns > 4 {
		return defaultColumns
	}
	return columns
}

func (r *Renderer) funcMap() template.FuncMap {
	return template.FuncMap{
		"markdown":    r.Markdown,
		"gridColumns": GridColumns,
		"formatPrice": FormatPrice,
		"formatDate":  formatDate,
		"firstMedia":  firstMedia,
		"socialIcon":  SocialIcon,
		"year":        func() int { return time.Now().Year() },
	}
}

// FormatPrice renders an amount in cents as "12.50".
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}

func firstMedia(items []content.Media) content.Media {
	for _, item := range items {
		if !item.IsZero() {
			return item
		}
	}
	return content.Media{}
}
