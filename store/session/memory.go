package session

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/pandodao/card-transfer/core"
)

func NewMemory(size int, ttl time.Duration) core.SessionStore {
	return &memoryStore{
		sessions: expirable.NewLRU[string, *core.Session](size, nil, ttl),
	}
}

type memoryStore struct {
	sessions *expirable.LRU[string, *core.Session]
}

func (s *memoryStore) Create(_ context.Context, session *core.Session) error {
	s.sessions.Add(session.ID, session)
	return nil
}

func (s *memoryStore) Find(_ context.Context, id string) (*core.Session, error) {
	if v, ok := s.sessions.Get(id); ok {
		return v, nil
	}

	return nil, nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.sessions.Remove(id)
	return nil
}
