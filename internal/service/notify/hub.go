package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"dice-service/internal/service/dice"
	"dice-service/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	ErrNoSubscriber = errors.New("notify: user has no open stream")
	ErrSlowConsumer = errors.New("notify: subscriber channel full")
)

const subscriberBuffer = 16

type OutgoingMessage struct {
	Type string      `json:"type"`
	Seq  int64       `json:"seq"`
	Data interface{} `json:"data"`
}

type RoundStartedPayload struct {
	Round   int           `json:"round"`
	Session dice.Snapshot `json:"session"`
}

type ResultPayload struct {
	Session dice.Snapshot `json:"session"`
	Report  dice.Report   `json:"report"`
	Summary string        `json:"summary"`
}

// Hub fans dice events out to websocket subscribers, one stream per user
// per room. Observe events go to a redis channel when redis is configured.
type Hub struct {
	mu    sync.Mutex
	rooms map[int64]map[int64]chan OutgoingMessage
	seq   map[int64]int64

	rdb     *redis.Client
	channel string
}

func NewHub(rdb *redis.Client, observeChannel string) *Hub {
	return &Hub{
		rooms:   make(map[int64]map[int64]chan OutgoingMessage),
		seq:     make(map[int64]int64),
		rdb:     rdb,
		channel: observeChannel,
	}
}

// Subscribe opens the stream of userID in roomID. An older stream of the
// same user is closed.
func (h *Hub) Subscribe(roomID, userID int64) <-chan OutgoingMessage {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.rooms[roomID]
	if !ok {
		subs = make(map[int64]chan OutgoingMessage)
		h.rooms[roomID] = subs
	}
	if old, ok := subs[userID]; ok {
		close(old)
	}
	ch := make(chan OutgoingMessage, subscriberBuffer)
	subs[userID] = ch
	return ch
}

// Unsubscribe closes ch if it is still the current stream of userID.
func (h *Hub) Unsubscribe(roomID, userID int64, ch <-chan OutgoingMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.rooms[roomID]
	if !ok {
		return
	}
	current, ok := subs[userID]
	if !ok || current != ch {
		return
	}
	delete(subs, userID)
	close(current)
	if len(subs) == 0 {
		delete(h.rooms, roomID)
		delete(h.seq, roomID)
	}
}

func (h *Hub) Subscribers(roomID int64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[roomID])
}

// Push sends one message to a single user.
func (h *Hub) Push(roomID, userID int64, msgType string, data interface{}) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pushLocked(roomID, userID, OutgoingMessage{Type: msgType, Seq: h.nextSeqLocked(roomID), Data: data})
}

// Broadcast sends one message to every subscriber of roomID. All
// receivers see the same seq.
func (h *Hub) Broadcast(roomID int64, msgType string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	msg := OutgoingMessage{Type: msgType, Seq: h.nextSeqLocked(roomID), Data: data}
	for uid := range h.rooms[roomID] {
		_ = h.pushLocked(roomID, uid, msg)
	}
}

func (h *Hub) pushLocked(roomID, userID int64, msg OutgoingMessage) error {
	ch, ok := h.rooms[roomID][userID]
	if !ok {
		return ErrNoSubscriber
	}
	select {
	case ch <- msg:
		return nil
	default:
		logger.Log.Warn("ws subscriber channel full",
			zap.Int64("userID", userID),
			zap.Int64("roomID", roomID),
			zap.String("type", msg.Type),
		)
		return ErrSlowConsumer
	}
}

func (h *Hub) nextSeqLocked(roomID int64) int64 {
	h.seq[roomID]++
	return h.seq[roomID]
}

func (h *Hub) RosterChanged(_ context.Context, snap dice.Snapshot) error {
	h.Broadcast(snap.RoomID, "roster", snap)
	return nil
}

func (h *Hub) RoundStarted(_ context.Context, snap dice.Snapshot, round int) error {
	h.Broadcast(snap.RoomID, "round_started", RoundStartedPayload{Round: round, Session: snap})
	return nil
}

func (h *Hub) PrivateRoll(_ context.Context, roomID, userID int64, roll dice.RollNotice) error {
	return h.Push(roomID, userID, "roll", roll)
}

func (h *Hub) PresentChoice(_ context.Context, roomID, userID int64, prompt dice.ChoicePrompt) error {
	return h.Push(roomID, userID, "choice", prompt)
}

func (h *Hub) Resolved(_ context.Context, snap dice.Snapshot, report dice.Report) error {
	h.Broadcast(snap.RoomID, "resolved", ResultPayload{Session: snap, Report: report, Summary: report.Summary()})
	return nil
}

func (h *Hub) Cancelled(_ context.Context, snap dice.Snapshot, report dice.Report) error {
	h.Broadcast(snap.RoomID, "cancelled", ResultPayload{Session: snap, Report: report, Summary: report.Summary()})
	return nil
}

// Observe publishes event on the observe channel.
func (h *Hub) Observe(ctx context.Context, event dice.Event) error {
	if h.rdb == nil || h.channel == "" {
		logger.Log.Debug("dice observe",
			zap.String("id", event.ID),
			zap.Int64("roomID", event.RoomID),
			zap.String("tag", event.Tag),
			zap.String("kind", event.Kind),
			zap.Int64("userID", event.UserID),
			zap.String("detail", event.Detail),
		)
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return h.rdb.Publish(ctx, h.channel, payload).Err()
}
