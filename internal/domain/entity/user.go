package entity

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	errs "github.com/auctionhub/currency-service/internal/domain/error"
	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
)

// Roles carried in access tokens
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Field limits for users
const (
	MinUsernameLength = 3
	MaxUsernameLength = 150
	MaxEmailLength    = 254
	MaxPhoneLength    = 20
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// User is an account on the auction platform
type User struct {
	ID             uint64
	Username       string
	Email          string
	PasswordHash   string
	Phone          string
	IsActive       bool
	IsStaff        bool
	IsSuspended    bool
	SuspendedUntil *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewUser validates the identity fields and creates an active, unsuspended user
func NewUser(username, email, passwordHash, phone string, timeProvider coreport.TimeProvider) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	phone = strings.TrimSpace(phone)

	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePhone(phone); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("%w: password is required", errs.ErrInvalidRequest)
	}

	now := timeProvider.Now()
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Phone:        phone,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ValidateUsername checks length and allowed characters
func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < MinUsernameLength || n > MaxUsernameLength {
		return fmt.Errorf("%w: username must be %d-%d characters", errs.ErrInvalidRequest, MinUsernameLength, MaxUsernameLength)
	}
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("%w: username may contain letters, digits and @.+-_ only", errs.ErrInvalidRequest)
	}
	return nil
}

// ValidateEmail checks that email is a bare address
func ValidateEmail(email string) error {
	if email == "" || len(email) > MaxEmailLength {
		return fmt.Errorf("%w: invalid email", errs.ErrInvalidRequest)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid email %q", errs.ErrInvalidRequest, email)
	}
	return nil
}

// ValidatePhone checks the phone number length; empty is allowed
func ValidatePhone(phone string) error {
	if utf8.RuneCountInString(phone) > MaxPhoneLength {
		return fmt.Errorf("%w: phone exceeds %d characters", errs.ErrInvalidRequest, MaxPhoneLength)
	}
	return nil
}

// IsSuspendedAt reports whether the suspension is in force at now.
// A suspension without an end date is indefinite.
func (u *User) IsSuspendedAt(now time.Time) bool {
	if !u.IsSuspended {
		return false
	}
	return u.SuspendedUntil == nil || u.SuspendedUntil.After(now)
}

// SuspensionExpired reports whether a timed suspension has run out but not been lifted yet
func (u *User) SuspensionExpired(now time.Time) bool {
	return u.IsSuspended && u.SuspendedUntil != nil && !u.SuspendedUntil.After(now)
}

// Suspend marks the user suspended until the given time, or indefinitely when until is nil
func (u *User) Suspend(until *time.Time, now time.Time) error {
	if until != nil && !until.After(now) {
		return fmt.Errorf("%w: suspension end must be in the future", errs.ErrInvalidRequest)
	}
	u.IsSuspended = true
	u.SuspendedUntil = until
	u.UpdatedAt = now
	return nil
}

// LiftSuspension clears the suspension flag and end date
func (u *User) LiftSuspension(now time.Time) {
	u.IsSuspended = false
	u.SuspendedUntil = nil
	u.UpdatedAt = now
}

// UpdateContact replaces the email and phone when provided
func (u *User) UpdateContact(email, phone *string, now time.Time) error {
	if email != nil {
		normalized := strings.TrimSpace(strings.ToLower(*email))
		if err := ValidateEmail(normalized); err != nil {
			return err
		}
		u.Email = normalized
	}
	if phone != nil {
		trimmed := strings.TrimSpace(*phone)
		if err := ValidatePhone(trimmed); err != nil {
			return err
		}
		u.Phone = trimmed
	}
	u.UpdatedAt = now
	return nil
}

// Role returns the access role encoded into tokens
func (u *User) Role() string {
	if u.IsStaff {
		return RoleAdmin
	}
	return RoleUser
}
