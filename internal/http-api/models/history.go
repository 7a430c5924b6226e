package models

import "time"

// History actions written by the workflow.
const (
	ActionUnderReview      = "under_review"
	ActionAccepted         = "accepted"
	ActionRejected         = "rejected"
	ActionPublished        = "published"
	ActionReviewSubmitted  = "review_submitted"
	ActionReviewerAssigned = "reviewer_assigned"
)

// ManuscriptHistory is an append-only audit entry. Rows are never updated or deleted.
type ManuscriptHistory struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ManuscriptID int64     `gorm:"not null;index" json:"manuscript_id"`
	ActorID      *int64    `json:"actor_id"`
	ActorRole    Role      `gorm:"size:32" json:"actor_role"`
	Action       string    `gorm:"size:64;not null" json:"action"`
	Comment      string    `gorm:"type:text" json:"comment"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

func (ManuscriptHistory) TableName() string {
	return "manuscript_history"
}
