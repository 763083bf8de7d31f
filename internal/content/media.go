package content

import "strings"

// Media references an asset held by the external upload provider.
type Media struct {
	File      string `json:"file" validate:"max=500"`
	FileID    string `json:"fileId" validate:"max=200"`
	Thumbnail string `json:"thumbnail" validate:"max=500"`
}

// IsZero reports whether no asset is referenced.
func (m Media) IsZero() bool {
	return strings.TrimSpace(m.File) == "" && strings.TrimSpace(m.Thumbnail) == ""
}

// URL returns the full-size asset, falling back to the thumbnail.
func (m Media) URL() string {
	if file := strings.TrimSpace(m.File); file != "" {
		return file
	}
	return strings.TrimSpace(m.Thumbnail)
}

// ThumbnailURL returns the thumbnail, falling back to the full-size asset.
func (m Media) ThumbnailURL() string {
	if thumb := strings.TrimSpace(m.Thumbnail); thumb != "" {
		return thumb
	}
	return strings.TrimSpace(m.File)
}
