package model

import "encoding/json"

// Role ids as issued by the backend.
const (
	RoleAdmin   int64 = 1
	RoleManager int64 = 2
	RoleCashier int64 = 3
)

type Role struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (r Role) RecordID() int64 { return r.ID }

type User struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	PhoneNumber string    `json:"phone_number"`
	Address     string    `json:"address"`
	RoleID      int64     `json:"role_id"`
	Role        *Role     `json:"role,omitempty"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
}

func (u User) RecordID() int64 { return u.ID }

func (u User) RoleName() string {
	if u.Role != nil && u.Role.Name != "" {
		return u.Role.Name
	}
	return UnknownLabel
}

// Account is the signed-in identity returned by /auth/me.
type Account struct {
	ID     json.Number `json:"id"`
	Email  string      `json:"email"`
	Name   string      `json:"name"`
	Role   string      `json:"role"`
	RoleID int64       `json:"role_id"`
	Phone  string      `json:"phone,omitempty"`
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserInput is the body for user create and update. Password rules are
// enforced by the user validator, not by tags alone.
type UserInput struct {
	Name                 string `json:"name" validate:"required,min=2"`
	Email                string `json:"email" validate:"required,email"`
	PhoneNumber          string `json:"phone_number" validate:"required,min=10"`
	Address              string `json:"address" validate:"required,min=5"`
	RoleID               int64  `json:"role_id" validate:"required"`
	Password             string `json:"password,omitempty"`
	PasswordConfirmation string `json:"password_confirmation,omitempty"`
}

type RoleInput struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description,omitempty"`
}
