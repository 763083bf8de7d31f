package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownHomepageSection is returned when decoding a section name the
// homepage does not have.
var ErrUnknownHomepageSection = errors.New("unknown homepage section")

// Homepage is the singleton document behind the public landing page.
type Homepage struct {
	Hero         Hero         `json:"hero"`
	Features     Features     `json:"features"`
	Showcase     Showcase     `json:"showcase"`
	CallToAction CallToAction `json:"callToAction"`
}

// Hero is the banner at the top of the homepage.
type Hero struct {
	Title      string `json:"title" validate:"max=200"`
	Subtitle   string `json:"subtitle" validate:"max=500"`
	CTALabel   string `json:"ctaLabel" validate:"max=60"`
	CTALink    string `json:"ctaLink" validate:"max=500"`
	Background Media  `json:"background"`
}

// FeatureItem is a single selling point.
type FeatureItem struct {
	Icon        string `json:"icon" validate:"max=60"`
	Title       string `json:"title" validate:"required,max=120"`
	Description string `json:"description" validate:"max=1000"`
}

// Features lists the selling points under the hero.
type Features struct {
	Heading string        `json:"heading" validate:"max=200"`
	Items   []FeatureItem `json:"items" validate:"max=24,dive"`
}

// Showcase is an image strip with a short introduction.
type Showcase struct {
	Heading     string  `json:"heading" validate:"max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Images      []Media `json:"images" validate:"max=24,dive"`
}

// CallToAction closes the homepage.
type CallToAction struct {
	Heading     string `json:"heading" validate:"max=200"`
	Body        string `json:"body" validate:"max=2000"`
	ButtonLabel string `json:"buttonLabel" validate:"max=60"`
	ButtonLink  string `json:"buttonLink" validate:"max=500"`
}

// HomepageSection is one independently editable part of the homepage. Only
// the section types declared in this package implement it.
type HomepageSection interface {
	SectionName() string
	applyTo(*Homepage)
}

const (
	HomepageHero         = "hero"
	HomepageFeatures     = "features"
	HomepageShowcase     = "showcase"
	HomepageCallToAction = "callToAction"
)

func (Hero) SectionName() string         { return HomepageHero }
func (Features) SectionName() string     { return HomepageFeatures }
func (Showcase) SectionName() string     { return HomepageShowcase }
func (CallToAction) SectionName() string { return HomepageCallToAction }

func (h Hero) applyTo(doc *Homepage)         { doc.Hero = h }
func (f Features) applyTo(doc *Homepage)     { doc.Features = f }
func (s Showcase) applyTo(doc *Homepage)     { doc.Showcase = s }
func (c CallToAction) applyTo(doc *Homepage) { doc.CallToAction = c }

// Apply replaces the named section of the homepage with section.
func (h *Homepage) Apply(section HomepageSection) {
	section.applyTo(h)
}

// Normalize replaces nil slices with empty ones so the document always has
// the same JSON shape.
func (h *Homepage) Normalize() {
	if h.Features.Items == nil {
		h.Features.Items = []FeatureItem{}
	}
	if h.Showcase.Images == nil {
		h.Showcase.Images = []Media{}
	}
}

// DefaultHomepage returns the empty homepage document.
func DefaultHomepage() Homepage {
	doc := Homepage{}
	doc.Normalize()
	return doc
}

// DecodeHomepageSection decodes raw JSON into the section named name.
func DecodeHomepageSection(name string, raw []byte) (HomepageSection, error) {
	var (
		section HomepageSection
		err     error
	)

	switch strings.TrimSpace(name) {
	case HomepageHero:
		var s Hero
		err = json.Unmarshal(raw, &s)
		section = s
	case HomepageFeatures:
		var s Features
		err = json.Unmarshal(raw, &s)
		section = s
	case HomepageShowcase:
		var s Showcase
		err = json.Unmarshal(raw, &s)
		section = s
	case HomepageCallToAction:
		var s CallToAction
		err = json.Unmarshal(raw, &s)
		section = s
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHomepageSection, name)
	}

	if err != nil {
		return nil, fmt.Errorf("decode homepage %s: %w", name, err)
	}
	return section, nil
}
