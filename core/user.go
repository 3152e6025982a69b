package core

import (
	"context"
	"time"
)

type User struct {
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserStore interface {
	Create(ctx context.Context, user *User) error
	Find(ctx context.Context, login string) (*User, error)
}
