package db

import (
	"time"

	"github.com/sitecms/internal/content"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CustomPage is a page assembled from an ordered list of sections in the
// dashboard's page builder. Deletes are hard deletes.
//
// Slug is indexed but not unique: two pages may claim the same slug, in which
// case slug lookups return the oldest one.
type CustomPage struct {
	ID          uint                                 `gorm:"primaryKey" json:"id"`
	Title       string                               `gorm:"size:200;not null" json:"title"`
	Slug        string                               `gorm:"size:120;index;not null" json:"slug"`
	Sections    datatypes.JSONSlice[content.Section] `json:"sections"`
	IsPublished bool                                 `gorm:"not null;default:false" json:"isPublished"`
	CreatedAt   time.Time                            `json:"createdAt"`
	UpdatedAt   time.Time                            `json:"updatedAt"`
}

// AfterFind keeps Sections non-nil for rows stored before any section existed.
func (p *CustomPage) AfterFind(tx *gorm.DB) error {
	if p.Sections == nil {
		p.Sections = datatypes.JSONSlice[content.Section]{}
	}
	return nil
}
