package db

import (
	"time"

	"github.com/sitecms/internal/content"
	"gorm.io/datatypes"
)

// Blog 定义了博客文章模型
type Blog struct {
	ID          uint                              `gorm:"primaryKey" json:"id"`
	Title       string                            `gorm:"size:200;not null" json:"title"`
	Slug        string                            `gorm:"size:120;index;not null" json:"slug"`
	Excerpt     string                            `gorm:"size:500" json:"excerpt"`
	Content     string                            `gorm:"type:text" json:"content"`
	CoverImage  datatypes.JSONType[content.Media] `json:"coverImage"`
	Published   bool                              `gorm:"not null;default:false;index" json:"published"`
	PublishedAt *time.Time                        `json:"publishedAt,omitempty"`
	CreatedAt   time.Time                         `json:"createdAt"`
	UpdatedAt   time.Time                         `json:"updatedAt"`
}
