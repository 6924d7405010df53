package dice

//go:generate mockgen -source=ports.go -destination=mocks/mock_ports.go -package=mocks

import (
	"context"
	"time"

	"dice-service/internal/service/wallet"
)

// Ledger moves chips. Implementations must make each call atomic.
type Ledger interface {
	Balance(ctx context.Context, userID int64) (int64, error)
	Debit(ctx context.Context, userID, amount int64, entry wallet.Entry) error
	Credit(ctx context.Context, userID, amount int64, entry wallet.Entry) error
}

// RandomSource is the only source of game randomness.
type RandomSource interface {
	RollDie() int
}

// Notifier delivers game events. Calls are best effort: errors are logged
// and never undo a state change.
type Notifier interface {
	RosterChanged(ctx context.Context, snap Snapshot) error
	RoundStarted(ctx context.Context, snap Snapshot, round int) error
	PrivateRoll(ctx context.Context, roomID, userID int64, roll RollNotice) error
	PresentChoice(ctx context.Context, roomID, userID int64, prompt ChoicePrompt) error
	Resolved(ctx context.Context, snap Snapshot, report Report) error
	Cancelled(ctx context.Context, snap Snapshot, report Report) error
	Observe(ctx context.Context, event Event) error
}

// Recorder persists terminal reports.
type Recorder interface {
	Record(ctx context.Context, report Report) error
}

// Sequencer hands out session tag numbers. Values must strictly increase.
type Sequencer interface {
	Next(ctx context.Context) (int64, error)
}

type RollNotice struct {
	Tag   string `json:"tag"`
	Round int    `json:"round"`
	Value int    `json:"value"`
	Total int    `json:"total"`
}

type Choice string

const (
	ChoiceFold     Choice = "fold"
	ChoiceContinue Choice = "continue"
)

type ChoicePrompt struct {
	Tag      string    `json:"tag"`
	UserID   int64     `json:"userId,string"`
	Options  []Choice  `json:"options"`
	Deadline time.Time `json:"deadline"`
}

// Event is an entry on the observe channel.
type Event struct {
	ID     string    `json:"id"`
	RoomID int64     `json:"roomId,string"`
	Tag    string    `json:"tag"`
	Kind   string    `json:"kind"`
	UserID int64     `json:"userId,string,omitempty"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at"`
}

type nopNotifier struct{}

func (nopNotifier) RosterChanged(context.Context, Snapshot) error                   { return nil }
func (nopNotifier) RoundStarted(context.Context, Snapshot, int) error               { return nil }
func (nopNotifier) PrivateRoll(context.Context, int64, int64, RollNotice) error     { return nil }
func (nopNotifier) PresentChoice(context.Context, int64, int64, ChoicePrompt) error { return nil }
func (nopNotifier) Resolved(context.Context, Snapshot, Report) error                { return nil }
func (nopNotifier) Cancelled(context.Context, Snapshot, Report) error               { return nil }
func (nopNotifier) Observe(context.Context, Event) error                            { return nil }

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, Report) error { return nil }
