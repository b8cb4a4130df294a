package model

import (
	"time"
)

type User struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	ImageFile    string    `db:"image_file"`
	CreatedAt    time.Time `db:"created_at"`

	// Computed fields (not in database)
	ImageURL string `db:"-"`
}
