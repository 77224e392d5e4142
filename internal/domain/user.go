package domain

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"
)

type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusApproved UserStatus = "approved"
	UserStatusDisabled UserStatus = "disabled"
)

type UserPassword struct {
	Hash string `db:"password_hash"`
	Salt string `db:"password_salt"`
}

// Init generates a fresh salt and hashes the plaintext password into it.
func (p *UserPassword) Init(password string) error {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	p.Salt = hex.EncodeToString(salt)
	p.Hash = hashPassword(password, p.Salt)
	return nil
}

func (p *UserPassword) Validate(password string) error {
	if subtle.ConstantTimeCompare([]byte(p.Hash), []byte(hashPassword(password, p.Salt))) != 1 {
		return fmt.Errorf("wrong password")
	}
	return nil
}

func hashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}

type User struct {
	ID        int64     `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	DealerID  string    `db:"dealer_id" json:"dealer_id"`
	Status    string    `db:"status" json:"status"`
	UserPassword
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type SignupUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"`
	DealerID  string `json:"dealer_id" validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
}

type LoginUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User      *User  `json:"user"`
	AuthToken string `json:"auth_token"`
}
