package models

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleAuthor   Role = "author"
	RoleStaff    Role = "staff"
	RoleReviewer Role = "reviewer"
	RoleAdmin    Role = "admin"
)

// Roles lists every role in display order.
var Roles = []Role{RoleAuthor, RoleStaff, RoleReviewer, RoleAdmin}

// ParseRole converts user input into a Role.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAuthor, RoleStaff, RoleReviewer, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName     string    `gorm:"size:128;not null" json:"full_name"`
	Email        string    `gorm:"size:128;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"` // Not show in JSON
	Role         Role      `gorm:"size:32;not null;index" json:"role"`
	RegisteredAt time.Time `gorm:"autoCreateTime" json:"registered_at"`
	IsBlocked    bool      `gorm:"default:false;not null" json:"is_blocked"`
}

func (User) TableName() string {
	return "users"
}
