package content

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind tags the variant carried by a Section.
type Kind string

const (
	KindHeaderBanner Kind = "header-banner"
	KindContent      Kind = "content"
	KindImageText    Kind = "image-text"
	KindGridLayout   Kind = "grid-layout"
	KindBottomMedia  Kind = "bottom-media"
)

// Kinds lists every section kind the site knows how to render.
var Kinds = []Kind{KindHeaderBanner, KindContent, KindImageText, KindGridLayout, KindBottomMedia}

// Known reports whether k is one of Kinds.
func (k Kind) Known() bool {
	for _, candidate := range Kinds {
		if k == candidate {
			return true
		}
	}
	return false
}

// Payload is the kind-specific data of a section.
type Payload interface {
	Kind() Kind
	isPayload()
}

// HeaderBanner is a full-width banner at the top of a page.
type HeaderBanner struct {
	Title      string `json:"title" validate:"max=200"`
	Subtitle   string `json:"subtitle" validate:"max=500"`
	Background Media  `json:"background"`
	CTALabel   string `json:"ctaLabel" validate:"max=60"`
	CTALink    string `json:"ctaLink" validate:"max=500"`
}

// TextBlock is a markdown body with an optional heading.
type TextBlock struct {
	Heading   string `json:"heading" validate:"max=200"`
	Body      string `json:"body" validate:"max=20000"`
	Alignment string `json:"alignment" validate:"omitempty,oneof=left center right"`
}

// ImageText pairs a markdown body with an image on one side.
type ImageText struct {
	Heading       string `json:"heading" validate:"max=200"`
	Body          string `json:"body" validate:"max=20000"`
	Image         Media  `json:"image"`
	ImagePosition string `json:"imagePosition" validate:"omitempty,oneof=left right"`
}

// GridItem is one cell of a GridLayout.
type GridItem struct {
	Image       Media  `json:"image"`
	Title       string `json:"title" validate:"max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// GridLayout lays items out in 1 to 4 columns.
type GridLayout struct {
	Heading string     `json:"heading" validate:"max=200"`
	Columns int        `json:"columns" validate:"omitempty,oneof=1 2 3 4"`
	Items   []GridItem `json:"items" validate:"max=48,dive"`
}

// BottomMedia is a closing image or video with a caption.
type BottomMedia struct {
	Media     Media  `json:"media"`
	Caption   string `json:"caption" validate:"max=500"`
	MediaType string `json:"mediaType" validate:"omitempty,oneof=image video"`
}

// Unknown keeps the raw data of a section kind this build does not recognise,
// so it survives a read-modify-write cycle untouched.
type Unknown struct {
	Type Kind
	Data json.RawMessage
}

func (HeaderBanner) Kind() Kind { return KindHeaderBanner }
func (TextBlock) Kind() Kind    { return KindContent }
func (ImageText) Kind() Kind    { return KindImageText }
func (GridLayout) Kind() Kind   { return KindGridLayout }
func (BottomMedia) Kind() Kind  { return KindBottomMedia }
func (u Unknown) Kind() Kind    { return u.Type }

func (HeaderBanner) isPayload() {}
func (TextBlock) isPayload()    {}
func (ImageText) isPayload()    {}
func (GridLayout) isPayload()   {}
func (BottomMedia) isPayload()  {}
func (Unknown) isPayload()      {}

// Section is one block of a custom page. Its identity is its position in the
// parent page; ID is only a hint for list keys and may be empty or repeated.
type Section struct {
	ID   string
	Data Payload
}

// Kind returns the tag of the carried payload, or "" when there is none.
func (s Section) Kind() Kind {
	if s.Data == nil {
		return ""
	}
	return s.Data.Kind()
}

type sectionWire struct {
	ID   string          `json:"id,omitempty"`
	Type Kind            `json:"type"`
	Data json.RawMessage `json:"data"`
}

// MarshalJSON encodes the section as {"id", "type", "data"}.
func (s Section) MarshalJSON() ([]byte, error) {
	wire := sectionWire{ID: s.ID, Type: s.Kind()}

	switch payload := s.Data.(type) {
	case nil:
		wire.Data = json.RawMessage("{}")
	case Unknown:
		wire.Data = payload.Data
		if len(bytes.TrimSpace(wire.Data)) == 0 {
			wire.Data = json.RawMessage("{}")
		}
	default:
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s section: %w", wire.Type, err)
		}
		wire.Data = data
	}

	return json.Marshal(wire)
}

// UnmarshalJSON decodes the {"id", "type", "data"} form. Unrecognised types are
// kept as Unknown rather than rejected.
func (s *Section) UnmarshalJSON(raw []byte) error {
	var wire sectionWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return err
	}

	data := wire.Data
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		data = json.RawMessage("{}")
	}

	payload, err := decodePayload(wire.Type, data)
	if err != nil {
		return err
	}

	s.ID = wire.ID
	s.Data = payload
	return nil
}

func decodePayload(kind Kind, data json.RawMessage) (Payload, error) {
	switch kind {
	case KindHeaderBanner:
		var p HeaderBanner
		if err := decodeInto(kind, data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case KindContent:
		var p TextBlock
		if err := decodeInto(kind, data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case KindImageText:
		var p ImageText
		if err := decodeInto(kind, data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case KindGridLayout:
		var p GridLayout
		if err := decodeInto(kind, data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case KindBottomMedia:
		var p BottomMedia
		if err := decodeInto(kind, data, &p); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return Unknown{Type: kind, Data: append(json.RawMessage(nil), data...)}, nil
	}
}

func decodeInto(kind Kind, data json.RawMessage, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s section: %w", kind, err)
	}
	return nil
}
