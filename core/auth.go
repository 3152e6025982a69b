package core

import (
	"context"
	"time"
)

type PendingVerification struct {
	Token     string    `json:"token"`
	Login     string    `json:"login"`
	CodeHash  string    `json:"code_hash"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Session struct {
	ID        string    `json:"id"`
	Login     string    `json:"login"`
	Token     string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// VerificationStore holds pending verifications until they are consumed or
// expire. Consume returns nil without error when the token is unknown, already
// consumed or expired, and removes the record otherwise.
type VerificationStore interface {
	Create(ctx context.Context, pending *PendingVerification) error
	Consume(ctx context.Context, token string) (*PendingVerification, error)
}

// SessionStore finds return nil without error for unknown or expired ids.
type SessionStore interface {
	Create(ctx context.Context, session *Session) error
	Find(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type CodeGenerator interface {
	Generate(ctx context.Context, login string) (string, error)
}

type CodeSender interface {
	Send(ctx context.Context, login, code string) error
}

type AuthService interface {
	Login(ctx context.Context, login, password string) (*PendingVerification, error)
	Verify(ctx context.Context, token, code string) (*Session, error)
	Authenticate(ctx context.Context, token string) (*Session, error)
	Logout(ctx context.Context, token string) error
}
