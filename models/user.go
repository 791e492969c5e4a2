package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	Password      string    `gorm:"not null" json:"-"`
	FullName      string    `json:"full_name"`
	ResetToken    string    `gorm:"index" json:"-"`
	ResetTokenExp time.Time `json:"-"`
}
