package memory

import (
	"xdao.co/randstate/attach"
)

// Store is an in-memory attachment store.
//
// It is the default backend for tests and for daemons that do not need the
// state to survive a restart. Callers are responsible for serializing
// access; the store itself performs no locking, matching the execution
// model of the state object it backs.
type Store struct {
	payloads map[uint64][]byte
}

func New() *Store {
	return &Store{payloads: make(map[uint64][]byte)}
}

func (s *Store) Put(version uint64, payload []byte) error {
	if version == 0 {
		return attach.ErrInvalidVersion
	}
	cp := make([]byte, len(payload))
	copy(cp, payload)
	s.payloads[version] = cp
	return nil
}

func (s *Store) Get(version uint64) ([]byte, error) {
	if version == 0 {
		return nil, attach.ErrInvalidVersion
	}
	p, ok := s.payloads[version]
	if !ok {
		return nil, attach.ErrNotFound
	}
	cp := make([]byte, len(p))
	copy(cp, p)
	return cp, nil
}

func (s *Store) Has(version uint64) bool {
	if version == 0 {
		return false
	}
	_, ok := s.payloads[version]
	return ok
}
