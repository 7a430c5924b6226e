package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ManuscriptStatus is the workflow state of a manuscript.
type ManuscriptStatus string

const (
	StatusSubmitted   ManuscriptStatus = "submitted"
	StatusUnderReview ManuscriptStatus = "under_review"
	StatusAccepted    ManuscriptStatus = "accepted"
	StatusRejected    ManuscriptStatus = "rejected"
	StatusPublished   ManuscriptStatus = "published"
)

// ParseManuscriptStatus rejects anything outside the five workflow states.
func ParseManuscriptStatus(s string) (ManuscriptStatus, error) {
	switch st := ManuscriptStatus(s); st {
	case StatusSubmitted, StatusUnderReview, StatusAccepted, StatusRejected, StatusPublished:
		return st, nil
	default:
		return "", fmt.Errorf("unknown manuscript status %q", s)
	}
}

type Manuscript struct {
	ID            int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Title         string           `gorm:"size:256;not null" json:"title"`
	Description   string           `gorm:"type:text" json:"description"`
	FilePath      string           `gorm:"size:256;not null" json:"file_path"`
	Status        ManuscriptStatus `gorm:"size:32;not null;default:submitted;index" json:"status"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
	AuthorID      int64            `gorm:"not null;index" json:"author_id"`
	PublicationID *int64           `gorm:"index" json:"publication_id"`

	// Associations
	Author      *User        `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Publication *Publication `gorm:"foreignKey:PublicationID" json:"publication,omitempty"`
}

func (Manuscript) TableName() string {
	return "manuscripts"
}

// BeforeSave rejects writes that would leave a status outside the workflow.
// Map updates carry the new status in the statement, not in m.
func (m *Manuscript) BeforeSave(tx *gorm.DB) error {
	status := m.Status
	if updates, ok := tx.Statement.Dest.(map[string]any); ok {
		switch v := updates["status"].(type) {
		case ManuscriptStatus:
			status = v
		case string:
			status = ManuscriptStatus(v)
		}
	}
	if status == "" {
		// column default applies
		return nil
	}
	_, err := ParseManuscriptStatus(string(status))
	return err
}
