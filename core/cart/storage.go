package cart

import (
	"context"

	"github.com/alexedwards/scs/v2"
)

// Storage is the durable key-value store a cart persists to. A read of
// an absent key reports ok=false; the store treats that the same as an
// empty cart.
type Storage interface {
	Read(key string) (value string, ok bool)
	Write(key, value string)
	Remove(key string)
}

// SessionStorage scopes cart persistence to the caller's browser
// session. The context must come from a request that went through the
// session manager's LoadAndSave.
func SessionStorage(session *scs.SessionManager, ctx context.Context) Storage {
	return sessionStorage{session: session, ctx: ctx}
}

type sessionStorage struct {
	session *scs.SessionManager
	ctx     context.Context
}

func (s sessionStorage) Read(key string) (string, bool) {
	if !s.session.Exists(s.ctx, key) {
		return "", false
	}
	return s.session.GetString(s.ctx, key), true
}

func (s sessionStorage) Write(key, value string) {
	s.session.Put(s.ctx, key, value)
}

func (s sessionStorage) Remove(key string) {
	s.session.Remove(s.ctx, key)
}

// MemoryStorage is a volatile Storage for tests and tooling.
type MemoryStorage struct {
	m map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{m: make(map[string]string)}
}

func (s *MemoryStorage) Read(key string) (string, bool) {
	v, ok := s.m[key]
	return v, ok
}

func (s *MemoryStorage) Write(key, value string) {
	s.m[key] = value
}

func (s *MemoryStorage) Remove(key string) {
	delete(s.m, key)
}
