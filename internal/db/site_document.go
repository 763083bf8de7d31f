package db

import (
	"time"

	"gorm.io/datatypes"
)

// SiteDocument stores a singleton document (homepage, about, others) as JSON.
// The unique Key is what keeps each singleton at most one row.
type SiteDocument struct {
	ID        uint           `gorm:"primaryKey"`
	Key       string         `gorm:"size:64;uniqueIndex;not null"`
	Data      datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 自定义表名以保持命名一致。
func (SiteDocument) TableName() string {
	return "site_documents"
}

const (
	// DocumentKeyHomepage 表示首页内容。
	DocumentKeyHomepage = "homepage"
	// DocumentKeyAbout 表示关于我们页面内容。
	DocumentKeyAbout = "about"
	// DocumentKeyOthers 表示其他站点级内容。
	DocumentKeyOthers = "others"
)
