package author

import (
	"time"

	"github.com/google/uuid"
)

// Author is the identity record - maps 1:1 to the authors table.
type Author struct {
	ID       uuid.UUID `db:"id" json:"id"`
	Username string    `db:"username" json:"username"`
	Email    string    `db:"email" json:"email"`

	// Never serialized: neither to clients nor into the cache.
	PasswordHash string `db:"hashed_password" json:"-"`

	IsActive    bool `db:"is_active" json:"is_active"`
	IsSuperuser bool `db:"is_superuser" json:"is_superuser"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NewAuthor builds a freshly registered author: random id, active, not superuser.
func NewAuthor(username, email, passwordHash string, now time.Time) *Author {
	return &Author{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     true,
		IsSuperuser:  false,
		CreatedAt:    now,
	}
}

// ToDTO strips everything that must not leave the service.
func (a *Author) ToDTO() AuthorDTO {
	return AuthorDTO{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
	}
}
