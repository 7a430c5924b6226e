package models

import "time"

type ReviewStatus string

const (
	ReviewPending   ReviewStatus = "pending"
	ReviewSubmitted ReviewStatus = "submitted"
	ReviewAccepted  ReviewStatus = "accepted"
	ReviewRejected  ReviewStatus = "rejected"
)

// Review is one reviewer's evaluation of one manuscript. There is at most
// one row per (manuscript, reviewer) pair.
type Review struct {
	ID           int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	ManuscriptID int64        `gorm:"not null;uniqueIndex:idx_review_pair" json:"manuscript_id"`
	ReviewerID   int64        `gorm:"not null;uniqueIndex:idx_review_pair" json:"reviewer_id"`
	Text         string       `gorm:"type:text" json:"text"`
	Score        *int         `json:"score"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`
	Status       ReviewStatus `gorm:"size:32;not null;default:pending" json:"status"`

	// Associations
	Manuscript *Manuscript `gorm:"foreignKey:ManuscriptID" json:"manuscript,omitempty"`
	Reviewer   *User       `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
