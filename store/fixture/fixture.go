// Package fixture seeds the reference user and cards used by the UI test suite.
package fixture

import (
	"context"
	"fmt"

	"github.com/pandodao/card-transfer/core"
	"github.com/pandodao/card-transfer/store"
	"golang.org/x/crypto/bcrypt"
)

type Card struct {
	Number  string
	Balance int64
}

type Account struct {
	Login    string
	Password string
	Cards    []Card
}

func Default() []Account {
	return []Account{
		{
			Login:    "vasya",
			Password: "qwerty123",
			Cards: []Card{
				{Number: "5559 0000 0000 0001", Balance: 10000},
				{Number: "5559 0000 0000 0002", Balance: 10000},
			},
		},
	}
}

// Load creates the accounts that do not exist yet. Existing users and cards
// are left as they are.
func Load(ctx context.Context, users core.UserStore, cards core.CardStore, accounts []Account) error {
	for _, account := range accounts {
		if err := loadAccount(ctx, users, cards, account); err != nil {
			return fmt.Errorf("load fixture %s: %w", account.Login, err)
		}
	}

	return nil
}

func loadAccount(ctx context.Context, users core.UserStore, cards core.CardStore, account Account) error {
	if _, err := users.Find(ctx, account.Login); store.IsErrNotFound(err) {
		hash, err := bcrypt.GenerateFromPassword([]byte(account.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		if err := users.Create(ctx, &core.User{Login: account.Login, PasswordHash: string(hash)}); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	for _, c := range account.Cards {
		number, err := core.ParseCardNumber(c.Number)
		if err != nil {
			return err
		}

		if _, err := cards.Find(ctx, number); err == nil {
			continue
		} else if !store.IsErrNotFound(err) {
			return err
		}

		if err := cards.Create(ctx, &core.Card{
			Number:     number,
			OwnerLogin: account.Login,
			Balance:    c.Balance,
		}); err != nil {
			return err
		}
	}

	return nil
}
