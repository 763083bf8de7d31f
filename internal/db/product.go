package db

import (
	"time"

	"github.com/sitecms/internal/content"
	"gorm.io/datatypes"
)

// Product 定义了产品模型
type Product struct {
	ID          uint                               `gorm:"primaryKey" json:"id"`
	Name        string                             `gorm:"size:120;not null" json:"name"`
	Slug        string                             `gorm:"size:140;index" json:"slug"`
	Description string                             `gorm:"type:text" json:"description"`
	Price       int64                              `gorm:"not null;default:0" json:"price"`
	Category    string                             `gorm:"size:60;index" json:"category"`
	Images      datatypes.JSONSlice[content.Media] `json:"images"`
	Featured    bool                               `gorm:"not null;default:false" json:"featured"`
	SortOrder   int                                `gorm:"not null;default:0" json:"sortOrder"`
	CreatedAt   time.Time                          `json:"createdAt"`
	UpdatedAt   time.Time                          `json:"updatedAt"`
}
