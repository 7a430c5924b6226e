package models

import "time"

type News struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"size:256;not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	PublishedAt time.Time `gorm:"index" json:"published_at"`
}

func (News) TableName() string {
	return "news"
}
