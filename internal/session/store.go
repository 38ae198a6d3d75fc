package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a session ID is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Store owns every session for the life of the process. A single lock guards
// the table, so each View/Update callback runs as one critical section.
// Sessions idle longer than the TTL are evicted lazily on access and by the
// background sweeper; a zero TTL disables expiry.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration

	done     chan struct{}
	stopOnce sync.Once
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		done:     make(chan struct{}),
	}
}

// Create inserts a fresh session holding the extracted resume text and
// returns its ID.
func (st *Store) Create(resumeText, fileName string) string {
	now := time.Now()
	s := &Session{
		ID:           uuid.NewString(),
		ResumeText:   resumeText,
		FileName:     fileName,
		UploadTime:   now,
		lastActivity: now,
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s.ID
}

// View runs fn with read access to the session. fn must not mutate it.
func (st *Store) View(id string, fn func(*Session)) error {
	st.mu.RLock()
	s, ok := st.sessions[id]
	expired := ok && st.expired(s, time.Now())
	if ok && !expired {
		defer st.mu.RUnlock()
		fn(s)
		return nil
	}
	st.mu.RUnlock()

	if expired {
		st.remove(id)
	}
	return ErrNotFound
}

// Update runs fn with exclusive access to the session and refreshes its
// activity time.
func (st *Store) Update(id string, fn func(*Session)) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return ErrNotFound
	}
	if st.expired(s, time.Now()) {
		delete(st.sessions, id)
		return ErrNotFound
	}
	fn(s)
	s.lastActivity = time.Now()
	return nil
}

// Len reports the number of stored sessions, expired ones included until
// the next sweep.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// StartSweeper launches the eviction loop. It stops when Close is called.
func (st *Store) StartSweeper(interval time.Duration) {
	if st.ttl <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				st.sweep(time.Now())
			case <-st.done:
				return
			}
		}
	}()
}

// Close stops the sweeper.
func (st *Store) Close() {
	st.stopOnce.Do(func() { close(st.done) })
}

func (st *Store) expired(s *Session, now time.Time) bool {
	return st.ttl > 0 && now.Sub(s.lastActivity) > st.ttl
}

func (st *Store) sweep(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	evicted := 0
	for id, s := range st.sessions {
		if st.expired(s, now) {
			delete(st.sessions, id)
			evicted++
		}
	}
	return evicted
}

func (st *Store) remove(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}
