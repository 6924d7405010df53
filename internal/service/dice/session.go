package dice

import (
	"fmt"
	"sync"
	"time"
)

type Phase string

const (
	PhaseRecruiting     Phase = "recruiting"
	PhaseRollingFirst   Phase = "rolling_first"
	PhaseAwaitingChoice Phase = "awaiting_choice"
	PhaseRollingSecond  Phase = "rolling_second"
	PhaseResolved       Phase = "resolved"
)

// ExitReason records how a participant left the round.
type ExitReason string

const (
	ExitFold    ExitReason = "fold"
	ExitQuit    ExitReason = "quit"
	ExitTimeout ExitReason = "timeout"
)

// Session is one game in one room. All fields are guarded by mu; methods
// with the Locked suffix expect it held.
type Session struct {
	roomID    int64
	seq       int64
	tag       string
	bet       int64
	capacity  int
	host      int64
	createdAt time.Time

	phase      Phase
	roster     []int64
	firstRoll  map[int64]int
	secondRoll map[int64]int
	folded     map[int64]ExitReason
	responded  map[int64]struct{}
	refunds    map[int64]int64

	round    int
	deadline time.Time
	timer    *time.Timer
	closed   bool

	mu sync.Mutex
}

func newSession(roomID, seq, bet int64, capacity int, host int64) *Session {
	return &Session{
		roomID:     roomID,
		seq:        seq,
		tag:        FormatTag(seq),
		bet:        bet,
		capacity:   capacity,
		host:       host,
		createdAt:  time.Now(),
		phase:      PhaseRecruiting,
		roster:     make([]int64, 0, capacity),
		firstRoll:  make(map[int64]int, capacity),
		secondRoll: make(map[int64]int, capacity),
		folded:     make(map[int64]ExitReason),
		responded:  make(map[int64]struct{}),
		refunds:    make(map[int64]int64),
	}
}

// FormatTag renders a session sequence number for display.
func FormatTag(seq int64) string {
	return fmt.Sprintf("#%04d", seq)
}

func (s *Session) RoomID() int64 { return s.roomID }
func (s *Session) Tag() string   { return s.tag }

func (s *Session) inRosterLocked(userID int64) bool {
	for _, uid := range s.roster {
		if uid == userID {
			return true
		}
	}
	return false
}

func (s *Session) removeFromRosterLocked(userID int64) {
	for i, uid := range s.roster {
		if uid == userID {
			s.roster = append(s.roster[:i], s.roster[i+1:]...)
			return
		}
	}
}

func (s *Session) hasRespondedLocked(userID int64) bool {
	_, ok := s.responded[userID]
	return ok
}

func (s *Session) isFoldedLocked(userID int64) bool {
	_, ok := s.folded[userID]
	return ok
}

func (s *Session) fullLocked() bool {
	return len(s.roster) >= s.capacity
}

// survivorsLocked returns non-folded participants in roster order.
func (s *Session) survivorsLocked() []int64 {
	out := make([]int64, 0, len(s.roster))
	for _, uid := range s.roster {
		if !s.isFoldedLocked(uid) {
			out = append(out, uid)
		}
	}
	return out
}

// allRespondedLocked reports responded == roster. It panics when
// responded holds a user outside the roster: the round decision would
// then be computed from corrupt state.
func (s *Session) allRespondedLocked() bool {
	for uid := range s.responded {
		if !s.inRosterLocked(uid) {
			panic(fmt.Sprintf("dice: session %s responded user %d not in roster", s.tag, uid))
		}
	}
	return len(s.responded) == len(s.roster)
}

func (s *Session) refundedLocked() int64 {
	var total int64
	for _, amount := range s.refunds {
		total += amount
	}
	return total
}

type PlayerView struct {
	UserID    int64 `json:"userId,string"`
	Host      bool  `json:"host"`
	Folded    bool  `json:"folded"`
	Responded bool  `json:"responded"`
}

// Snapshot is the public view of a session. It never carries rolls.
type Snapshot struct {
	RoomID    int64        `json:"roomId,string"`
	Tag       string       `json:"tag"`
	HostID    int64        `json:"hostId,string"`
	Bet       int64        `json:"bet"`
	Capacity  int          `json:"capacity"`
	Phase     Phase        `json:"phase"`
	Players   []PlayerView `json:"players"`
	Deadline  *time.Time   `json:"deadline,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Roster returns participant ids in join order.
func (s Snapshot) Roster() []int64 {
	ids := make([]int64, 0, len(s.Players))
	for _, p := range s.Players {
		ids = append(ids, p.UserID)
	}
	return ids
}

func (s *Session) snapshotLocked() Snapshot {
	players := make([]PlayerView, 0, len(s.roster))
	for _, uid := range s.roster {
		players = append(players, PlayerView{
			UserID:    uid,
			Host:      uid == s.host,
			Folded:    s.isFoldedLocked(uid),
			Responded: s.hasRespondedLocked(uid),
		})
	}
	snap := Snapshot{
		RoomID:    s.roomID,
		Tag:       s.tag,
		HostID:    s.host,
		Bet:       s.bet,
		Capacity:  s.capacity,
		Phase:     s.phase,
		Players:   players,
		CreatedAt: s.createdAt,
	}
	if s.phase == PhaseAwaitingChoice && !s.deadline.IsZero() {
		deadline := s.deadline
		snap.Deadline = &deadline
	}
	return snap
}
