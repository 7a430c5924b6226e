package models

import "time"

type MessageStatus string

const (
	MessageNew  MessageStatus = "new"
	MessageDone MessageStatus = "done"
)

// Message is a contact-form submission. Either SenderID or SenderEmail is set.
type Message struct {
	ID          int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID    *int64        `gorm:"index" json:"sender_id"`
	SenderEmail *string       `gorm:"size:128" json:"sender_email"`
	Subject     string        `gorm:"size:256;not null" json:"subject"`
	Body        string        `gorm:"type:text;not null" json:"body"`
	SentAt      time.Time     `gorm:"index" json:"sent_at"`
	Status      MessageStatus `gorm:"size:16;not null;default:new" json:"status"`
	IsRead      bool          `gorm:"default:false;not null" json:"is_read"`

	Sender *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}
