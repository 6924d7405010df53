package dice

import (
	"fmt"
	"sync"

	appErr "dice-service/pkg/errors"
)

// Registry maps a room to its single active session. The registry lock
// only guards the map; session state is guarded by each session's own
// lock, so rooms never contend with each other.
type Registry struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[int64]*Session)}
}

// Create registers a new session for roomID. The session is returned
// locked so the creator finishes setup before any other request sees it.
func (r *Registry) Create(roomID, seq, bet int64, capacity int, host int64) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[roomID]; ok {
		return nil, appErr.ErrRoomBusy
	}
	sess := newSession(roomID, seq, bet, capacity, host)
	sess.mu.Lock()
	r.sessions[roomID] = sess
	return sess, nil
}

func (r *Registry) Get(roomID int64) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[roomID]
	if !ok {
		return nil, appErr.ErrSessionNotFound
	}
	return sess, nil
}

func (r *Registry) Occupied(roomID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[roomID]
	return ok
}

// Remove unregisters sess. Removing a session that is not the current
// occupant of its room is a broken invariant and panics.
func (r *Registry) Remove(sess *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.sessions[sess.roomID]
	if !ok || current != sess {
		panic(fmt.Sprintf("dice: double removal of session %s in room %d", sess.tag, sess.roomID))
	}
	delete(r.sessions, sess.roomID)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Rooms lists occupied room ids.
func (r *Registry) Rooms() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	rooms := make([]int64, 0, len(r.sessions))
	for roomID := range r.sessions {
		rooms = append(rooms, roomID)
	}
	return rooms
}
