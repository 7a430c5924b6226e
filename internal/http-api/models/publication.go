package models

import "time"

// Publication is an issue or volume that published manuscripts are attached to.
type Publication struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Type        string     `gorm:"size:64;not null" json:"type"` // journal, book, proceedings
	Title       string     `gorm:"size:256;not null" json:"title"`
	PubDate     *time.Time `gorm:"type:date" json:"pub_date"`
	Description string     `gorm:"type:text" json:"description"`
}

func (Publication) TableName() string {
	return "publications"
}
