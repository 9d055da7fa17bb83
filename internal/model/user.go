package model

import (
	"time"
)

// Roles determine behavior only, never ownership.
const (
	RoleUser    = "user"
	RoleCreator = "creator"
	RoleAdmin   = "admin"
)

type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `json:"username" gorm:"size:64;not null;uniqueIndex"`
	Email        string    `json:"email" gorm:"size:120;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	Role         string    `json:"role" gorm:"size:20;not null;default:'user'"`
	IsActive     bool      `json:"is_active" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	LastSeen     time.Time `json:"last_seen"`

	Questionnaires []Questionnaire `json:"-" gorm:"foreignKey:CreatorID"`
	Responses      []Response      `json:"-" gorm:"foreignKey:UserID"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsCreator reports whether the user may create questionnaires.
func (u *User) IsCreator() bool {
	return u.Role == RoleAdmin || u.Role == RoleCreator
}
