package verification

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/pandodao/card-transfer/core"
)

// NewMemory keeps at most size pending verifications in process, each for ttl.
func NewMemory(size int, ttl time.Duration) core.VerificationStore {
	return &memoryStore{
		pending: expirable.NewLRU[string, *core.PendingVerification](size, nil, ttl),
	}
}

type memoryStore struct {
	pending *expirable.LRU[string, *core.PendingVerification]
	mux     sync.Mutex
}

func (s *memoryStore) Create(_ context.Context, pending *core.PendingVerification) error {
	s.pending.Add(pending.Token, pending)
	return nil
}

func (s *memoryStore) Consume(_ context.Context, token string) (*core.PendingVerification, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	v, ok := s.pending.Get(token)
	if !ok {
		return nil, nil
	}

	s.pending.Remove(token)
	return v, nil
}
