package render

import (
	"bytes"
	"html/template"

	"github.com/sitecms/internal/content"
)

type sectionRenderer func(r *Renderer, payload content.Payload) (template.HTML, error)

// sectionRenderers maps every known section kind to its renderer. Kinds
// missing from the map render nothing.
var sectionRenderers = map[content.Kind]sectionRenderer{
	content.KindHeaderBanner: renderHeaderBanner,
	content.KindContent:      renderTextBlock,
	content.KindImageText:    renderImageText,
	content.KindGridLayout:   renderGridLayout,
	content.KindBottomMedia:  renderBottomMedia,
}

type textBlockView struct {
	Heading   string
	Body      template.HTML
	Alignment string
}

type imageTextView struct {
	Heading       string
	Body          template.HTML
	Image         content.Media
	ImagePosition string
}

type gridLayoutView struct {
	Heading string
	Columns int
	Items   []content.GridItem
}

type bottomMediaView struct {
	Media    content.Media
	Caption  string
	IsVideo  bool
	EmbedURL string
}

func (r *Renderer) renderSection(section content.Section) (template.HTML, error) {
	if section.Data == nil {
		return "", nil
	}
	render, ok := sectionRenderers[section.Kind()]
	if !ok {
		return "", nil
	}
	return render(r, section.Data)
}

func (r *Renderer) executeSection(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.sections.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func renderHeaderBanner(r *Renderer, payload content.Payload) (template.HTML, error) {
	banner, ok := payload.(content.HeaderBanner)
	if !ok {
		return "", nil
	}
	return r.executeSection("section/header-banner", banner)
}

func renderTextBlock(r *Renderer, payload content.Payload) (template.HTML, error) {
	block, ok := payload.(content.TextBlock)
	if !ok {
		return "", nil
	}
	return r.executeSection("section/content", textBlockView{
		Heading:   block.Heading,
		Body:      r.Markdown(block.Body),
		Alignment: fallback(block.Alignment, "left"),
	})
}

func renderImageText(r *Renderer, payload content.Payload) (template.HTML, error) {
	block, ok := payload.(content.ImageText)
	if !ok {
		return "", nil
	}
	return r.executeSection("section/image-text", imageTextView{
		Heading:       block.Heading,
		Body:          r.Markdown(block.Body),
		Image:         block.Image,
		ImagePosition: fallback(block.ImagePosition, "left"),
	})
}

func renderGridLayout(r *Renderer, payload content.Payload) (template.HTML, error) {
	grid, ok := payload.(content.GridLayout)
	if !ok {
		return "", nil
	}
	return r.executeSection("section/grid-layout", gridLayoutView{
		Heading: grid.Heading,
		Columns: GridColumns(grid.Columns),
		Items:   grid.Items,
	})
}

func renderBottomMedia(r *Renderer, payload content.Payload) (template.HTML, error) {
	media, ok := payload.(content.BottomMedia)
	if !ok {
		return "", nil
	}
	view := bottomMediaView{
		Media:   media.Media,
		Caption: media.Caption,
		IsVideo: media.MediaType == "video",
	}
	if view.IsVideo {
		view.EmbedURL, _ = videoEmbedURL(media.Media.URL())
	}
	return r.executeSection("section/bottom-media", view)
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
