package user

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pandodao/card-transfer/core"
	"github.com/tsenart/nap"
)

func New(db *nap.DB, sb sq.StatementBuilderType) core.UserStore {
	users, err := lru.New[string, *core.User](256)
	if err != nil {
		panic(err)
	}

	return &userStore{
		db:    db,
		sb:    sb,
		users: users,
	}
}

type userStore struct {
	db    *nap.DB
	sb    sq.StatementBuilderType
	users *lru.Cache[string, *core.User]
}

var columns = []string{"login", "password_hash", "created_at"}

func (s *userStore) Create(ctx context.Context, user *core.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	b := s.sb.Insert("users").
		Columns(columns...).
		Values(user.Login, user.PasswordHash, user.CreatedAt)

	_, err := b.RunWith(s.db).ExecContext(ctx)
	return err
}

func (s *userStore) Find(ctx context.Context, login string) (*core.User, error) {
	if u, ok := s.users.Get(login); ok {
		return u, nil
	}

	u, err := s.find(ctx, login)
	if err != nil {
		return nil, err
	}

	s.users.Add(login, u)
	return u, nil
}

func (s *userStore) find(ctx context.Context, login string) (*core.User, error) {
	b := s.sb.Select(columns...).From("users").Where(sq.Eq{"login": login})
	row := b.RunWith(s.db).QueryRowContext(ctx)

	var user core.User
	if err := row.Scan(&user.Login, &user.PasswordHash, &user.CreatedAt); err != nil {
		return nil, err
	}

	return &user, nil
}
