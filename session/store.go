// Package session keeps the in-progress survey of every conversation.
package session

import (
	"sync"

	"github.com/mbolis/crew-survey/model"
)

// Store holds one session per conversation.
//
// Every operation is atomic on its own. Lock additionally serializes a whole
// interaction on a conversation, so that a read-modify-write spanning I/O cannot
// race with the next interaction on the same conversation.
type Store interface {
	Lock(id model.ConversationID) (unlock func())
	Get(id model.ConversationID) model.Session
	Update(id model.ConversationID, merge func(*model.Answers))
	SetStage(id model.ConversationID, stage model.Stage)
	Clear(id model.ConversationID)
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// MemoryStore keeps sessions for the lifetime of the process.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[model.ConversationID]*model.Session
	locks    map[model.ConversationID]*keyLock
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[model.ConversationID]*model.Session),
		locks:    make(map[model.ConversationID]*keyLock),
	}
}

func (s *MemoryStore) Lock(id model.ConversationID) func() {
	s.mu.Lock()
	kl, ok := s.locks[id]
	if !ok {
		kl = &keyLock{}
		s.locks[id] = kl
	}
	kl.refs++
	s.mu.Unlock()

	kl.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			kl.mu.Unlock()

			s.mu.Lock()
			kl.refs--
			if kl.refs == 0 {
				delete(s.locks, id)
			}
			s.mu.Unlock()
		})
	}
}

// Get returns a copy of the session, creating a fresh one if the conversation
// has none.
func (s *MemoryStore) Get(id model.ConversationID) model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(id)
	return model.Session{
		ID:      sess.ID,
		Stage:   sess.Stage,
		Answers: sess.Answers.Clone(),
	}
}

func (s *MemoryStore) Update(id model.ConversationID, merge func(*model.Answers)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merge(&s.session(id).Answers)
}

func (s *MemoryStore) SetStage(id model.ConversationID, stage model.Stage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session(id).Stage = stage
}

func (s *MemoryStore) Clear(id model.ConversationID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}

// Len reports how many conversations currently hold a session.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// must be called with s.mu held
func (s *MemoryStore) session(id model.ConversationID) *model.Session {
	sess, ok := s.sessions[id]
	if !ok {
		sess = &model.Session{ID: id, Stage: model.AwaitingName}
		s.sessions[id] = sess
	}
	return sess
}
