package core

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// CardNumber is a 16 digit card number stored without separators.
type CardNumber string

// ParseCardNumber accepts numbers with or without spaces between digit groups.
func ParseCardNumber(s string) (CardNumber, error) {
	digits := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))

	if len(digits) != 16 {
		return "", fmt.Errorf("card number %q: want 16 digits", s)
	}

	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("card number %q: non digit character", s)
		}
	}

	return CardNumber(digits), nil
}

// String formats the number in groups of four.
func (n CardNumber) String() string {
	s := string(n)
	if len(s) != 16 {
		return s
	}

	return s[0:4] + " " + s[4:8] + " " + s[8:12] + " " + s[12:16]
}

func (n CardNumber) Masked() string {
	s := string(n)
	if len(s) < 4 {
		return s
	}

	return "**** **** **** " + s[len(s)-4:]
}

type Card struct {
	Seq        uint64     `json:"seq"`
	Number     CardNumber `json:"number"`
	OwnerLogin string     `json:"owner_login"`
	Balance    int64      `json:"balance"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Ledger summarises all stored cards.
type Ledger struct {
	Cards    int   `json:"cards"`
	Total    int64 `json:"total"`
	Negative int   `json:"negative"`
}

type CardStore interface {
	Create(ctx context.Context, card *Card) error
	Find(ctx context.Context, number CardNumber) (*Card, error)
	// ListOwner returns the owner's cards in assignment order.
	ListOwner(ctx context.Context, login string) ([]*Card, error)
	Sum(ctx context.Context) (*Ledger, error)
}

type AccountService interface {
	Cards(ctx context.Context, session *Session) ([]*Card, error)
	Balance(ctx context.Context, session *Session, number CardNumber) (int64, error)
}

// CardAt resolves a positional index against cards listed by ListOwner.
func CardAt(cards []*Card, index int) (*Card, bool) {
	if index < 0 || index >= len(cards) {
		return nil, false
	}

	return cards[index], true
}
