package dice_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"dice-service/internal/service/dice"
	"dice-service/internal/service/wallet"
	appErr "dice-service/pkg/errors"
)

const (
	room     int64 = 7
	alice    int64 = 1
	bob      int64 = 2
	carol    int64 = 3
	startBal int64 = 1000
)

type memLedger struct {
	mu       sync.Mutex
	balances map[int64]int64
	debited  int64
	credited int64
	entries  []wallet.Entry
}

func newMemLedger(users ...int64) *memLedger {
	l := &memLedger{balances: make(map[int64]int64)}
	for _, uid := range users {
		l.balances[uid] = startBal
	}
	return l
}

func (l *memLedger) Balance(_ context.Context, userID int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[userID], nil
}

func (l *memLedger) Debit(_ context.Context, userID, amount int64, entry wallet.Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balances[userID] < amount {
		return fmt.Errorf("debit user %d: %w", userID, appErr.ErrInsufficientBalance)
	}
	l.balances[userID] -= amount
	l.debited += amount
	l.entries = append(l.entries, entry)
	return nil
}

func (l *memLedger) Credit(_ context.Context, userID, amount int64, entry wallet.Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[userID] += amount
	l.credited += amount
	l.entries = append(l.entries, entry)
	return nil
}

func (l *memLedger) balance(userID int64) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[userID]
}

func (l *memLedger) totals() (debited, credited int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debited, l.credited
}

// scriptedDie returns its values in order, then 1 forever.
type scriptedDie struct {
	mu     sync.Mutex
	values []int
}

func newScriptedDie(values ...int) *scriptedDie {
	return &scriptedDie{values: values}
}

func (d *scriptedDie) RollDie() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.values) == 0 {
		return 1
	}
	v := d.values[0]
	d.values = d.values[1:]
	return v
}

type captureNotifier struct {
	mu        sync.Mutex
	rolls     map[int64][]dice.RollNotice
	prompts   map[int64]int
	rounds    []int
	resolved  []dice.Report
	cancelled []dice.Report
	events    []dice.Event
}

func newCaptureNotifier() *captureNotifier {
	return &captureNotifier{
		rolls:   make(map[int64][]dice.RollNotice),
		prompts: make(map[int64]int),
	}
}

func (n *captureNotifier) RosterChanged(context.Context, dice.Snapshot) error { return nil }

func (n *captureNotifier) RoundStarted(_ context.Context, _ dice.Snapshot, round int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rounds = append(n.rounds, round)
	return nil
}

func (n *captureNotifier) PrivateRoll(_ context.Context, _ int64, userID int64, roll dice.RollNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rolls[userID] = append(n.rolls[userID], roll)
	return nil
}

func (n *captureNotifier) PresentChoice(_ context.Context, _ int64, userID int64, _ dice.ChoicePrompt) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.prompts[userID]++
	return nil
}

func (n *captureNotifier) Resolved(_ context.Context, _ dice.Snapshot, report dice.Report) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resolved = append(n.resolved, report)
	return nil
}

func (n *captureNotifier) Cancelled(_ context.Context, _ dice.Snapshot, report dice.Report) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelled = append(n.cancelled, report)
	return nil
}

func (n *captureNotifier) Observe(_ context.Context, event dice.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func (n *captureNotifier) resolvedReports() []dice.Report {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]dice.Report(nil), n.resolved...)
}

func (n *captureNotifier) cancelledReports() []dice.Report {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]dice.Report(nil), n.cancelled...)
}

type captureRecorder struct {
	mu      sync.Mutex
	reports []dice.Report
}

func (r *captureRecorder) Record(_ context.Context, report dice.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report)
	return nil
}

func (r *captureRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reports)
}

type fixture struct {
	svc      *dice.Service
	ledger   *memLedger
	notifier *captureNotifier
	recorder *captureRecorder
}

func newFixture(t *testing.T, timeout time.Duration, rolls ...int) *fixture {
	t.Helper()
	f := &fixture{
		ledger:   newMemLedger(alice, bob, carol),
		notifier: newCaptureNotifier(),
		recorder: &captureRecorder{},
	}
	cfg := dice.DefaultConfig()
	if timeout > 0 {
		cfg.ChoiceTimeout = timeout
	}
	f.svc = dice.NewService(cfg, dice.Deps{
		Ledger:   f.ledger,
		Dice:     newScriptedDie(rolls...),
		Notifier: f.notifier,
		Recorder: f.recorder,
	})
	t.Cleanup(func() { f.svc.Shutdown(context.Background()) })
	return f
}

// startFull opens a session hosted by alice and joins the remaining users
// so the first round is rolled.
func (f *fixture) startFull(t *testing.T, bet int64, users ...int64) *dice.Session {
	t.Helper()
	ctx := context.Background()
	if _, err := f.svc.Start(ctx, dice.StartRequest{RoomID: room, HostID: alice, Bet: bet, Players: len(users) + 1}); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	for _, uid := range users {
		if _, err := f.svc.Join(ctx, room, uid); err != nil {
			t.Fatalf("join %d failed: %v", uid, err)
		}
	}
	sess := f.svc.SessionOf(room)
	if sess == nil {
		t.Fatalf("expected an open session in room %d", room)
	}
	return sess
}

func (f *fixture) assertConserved(t *testing.T, report dice.Report) {
	t.Helper()
	debited, credited := f.ledger.totals()
	if debited != credited+report.Remainder+report.Forfeited {
		t.Fatalf("chips not conserved: debited=%d credited=%d remainder=%d forfeited=%d",
			debited, credited, report.Remainder, report.Forfeited)
	}
	if report.Staked != report.Refunded+report.Share*int64(len(report.Winners))+report.Remainder+report.Forfeited {
		t.Fatalf("report does not balance: %+v", report)
	}
}
