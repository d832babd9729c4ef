package author

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MaxEmailLength    = 100
	MinPasswordLength = 8
	// bcrypt ignores anything past 72 bytes
	MaxPasswordLength = 72

	TokenTypeBearer = "bearer"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// ========================================
// AUTH DTOs
// ========================================

// RegisterRequest - POST /auth/register
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims surrounding whitespace and lower-cases the email.
func (r *RegisterRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.RuneLength(MinUsernameLength, MaxUsernameLength).Error("username must be 3-50 characters"),
			validation.Match(usernamePattern).Error("username may only contain letters, digits, '_', '.' and '-'"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.EmailFormat.Error("invalid email format"),
			validation.Length(3, MaxEmailLength),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(MinPasswordLength, MaxPasswordLength).Error("password must be 8-72 characters"),
		),
	)
}

// LoginRequest - POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginResponse carries the access token
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AuthorDTO - public author representation (safe to expose)
type AuthorDTO struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}
