package net

import "sort"

// SessionStore tracks live sessions. Frame loop only.
type SessionStore struct {
	byID map[uint64]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{byID: make(map[uint64]*Session)}
}

func (s *SessionStore) Add(sess *Session) {
	s.byID[sess.ID] = sess
}

func (s *SessionStore) Remove(id uint64) {
	delete(s.byID, id)
}

func (s *SessionStore) Get(id uint64) *Session {
	return s.byID[id]
}

func (s *SessionStore) Len() int {
	return len(s.byID)
}

// ForEach visits sessions in ascending id order.
func (s *SessionStore) ForEach(fn func(*Session)) {
	ids := make([]uint64, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		fn(s.byID[id])
	}
}
