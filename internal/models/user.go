package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultAvatar = "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=60&h=60&fit=crop&crop=center"

// User is the fabricated account record of the mock authentication flow.
// ID is derived from the creation timestamp and acts as an opaque token.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Avatar    string    `json:"avatar"`
	JoinDate  time.Time `json:"join_date"`
	Address   string    `json:"address,omitempty"`
	Birthdate string    `json:"birthdate,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	Remember  bool      `json:"remember"`
	Orders    []Order   `json:"orders,omitempty"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func DefaultAvatar() string {
	return defaultAvatar
}

// StoredSession is the persisted shape of a session: the user record, the
// login flag, and the save timestamp (unix milliseconds) the restore rule
// is evaluated against.
type StoredSession struct {
	User         User   `json:"user"`
	PasswordHash string `json:"password_hash,omitempty"`
	IsLoggedIn   bool   `json:"is_logged_in"`
	Timestamp    int64  `json:"timestamp"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

type RegisterRequest struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	AcceptTerms     bool   `json:"accept_terms"`
}

type LoginResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token,omitempty"`
	ExpiresIn int    `json:"expires_in,omitempty"`
	User      *User  `json:"user,omitempty"`
	Message   string `json:"message,omitempty"`
}

// UpdateProfileRequest carries profile overrides. Empty fields retain the
// prior value; no further validation applies.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Birthdate string `json:"birthdate"`
	Gender    string `json:"gender"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordStrengthRequest struct {
	Password string `json:"password" validate:"required"`
}

// PasswordStrength is advisory UI feedback: the count of satisfied checks
// among length>=8, uppercase, lowercase, digit, special character.
type PasswordStrength struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

type NewsletterRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// JWT claims carried by the bearer token. OwnerID is the session scope the
// cart, wishlist, and session blobs are keyed under.
type Claims struct {
	OwnerID string `json:"owner_id"`
	UserID  int64  `json:"user_id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}
