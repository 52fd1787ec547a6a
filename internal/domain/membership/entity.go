package membership

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. Accounts are never deleted.
type User struct {
	ID           uuid.UUID      `db:"id"`
	Email        string         `db:"email"`
	FirstName    string         `db:"first_name"`
	LastName     string         `db:"last_name"`
	PasswordHash string         `db:"password_hash"`
	ProfileImage sql.NullString `db:"profile_image"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// ProfileImageURL returns the avatar URL or "" when none is set
func (u *User) ProfileImageURL() string {
	if u.ProfileImage.Valid {
		return u.ProfileImage.String
	}
	return ""
}
