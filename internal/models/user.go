package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an authenticated person. OIDC users keep the provider subject as ID;
// local accounts get a generated UUID and a password hash.
type User struct {
	ID              string  `gorm:"primaryKey;size:255" json:"id"`
	Email           *string `gorm:"size:255;uniqueIndex" json:"email"`
	FirstName       string  `gorm:"size:100" json:"first_name"`
	LastName        string  `gorm:"size:100" json:"last_name"`
	ProfileImageURL string  `gorm:"size:500" json:"profile_image_url"`
	PasswordHash    string  `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
