package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Account kinds. Only Admin may run maintenance endpoints.
const (
	Member = "Member"
	Admin  = "Admin"
)

const passwordCost = 10

// Credentials is the login body. The fingerprint ties the refresh token to a device.
type Credentials struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	DeviceFingerprint string `json:"deviceFingerprint,omitempty"`
}

type UserSignupRequest struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// UserUpdateRequest carries profile edits; empty fields are left unchanged
type UserUpdateRequest struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// User is a shopper account. Analyses and favorites hang off UserID.
type User struct {
	UserID         string    `json:"userId" db:"user_id"`
	DisplayName    string    `json:"displayName" db:"display_name"`
	Email          string    `json:"email" db:"email"`
	HashedPassword string    `json:"-" db:"password_hash"`
	Kind           string    `json:"kind" db:"kind"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// UserDevice is a browser or phone holding a refresh token until Expiry
type UserDevice struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"userId" db:"user_id"`
	Fingerprint string    `json:"fingerprint" db:"fingerprint"`
	DeviceData  string    `json:"deviceData" db:"device_data"`
	Expiry      time.Time `json:"expiry" db:"expiry"`
}

// NewUser builds a Member account from a signup. Without a display name the
// part of the email before the @ is shown instead.
func NewUser(signup UserSignupRequest) (User, error) {
	hash, err := HashPassword(signup.Password)
	if err != nil {
		return User{}, err
	}

	displayName := strings.TrimSpace(signup.DisplayName)
	if displayName == "" {
		displayName, _, _ = strings.Cut(signup.Email, "@")
	}

	now := time.Now()
	return User{
		UserID:         uuid.New().String(),
		DisplayName:    displayName,
		Email:          signup.Email,
		HashedPassword: hash,
		Kind:           Member,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash
func (user User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) == nil
}
