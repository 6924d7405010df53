package dice

import (
	"context"
	"fmt"
	"math"
	"time"

	"dice-service/internal/model"
	"dice-service/internal/service/wallet"
	appErr "dice-service/pkg/errors"
	"dice-service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Config struct {
	ChoiceTimeout time.Duration
	MinPlayers    int
	MaxPlayers    int
	// AllowedRooms restricts where games may start. Empty allows all rooms.
	AllowedRooms []int64
}

func DefaultConfig() Config {
	return Config{
		ChoiceTimeout: DefaultChoiceTimeout,
		MinPlayers:    2,
		MaxPlayers:    10,
	}
}

type Deps struct {
	Ledger    Ledger
	Dice      RandomSource
	Notifier  Notifier
	Recorder  Recorder
	Sequencer Sequencer
}

// Service coordinates dice sessions: recruiting, both rolling rounds,
// choices, timeouts and payouts.
type Service struct {
	cfg        Config
	registry   *Registry
	ledger     Ledger
	dice       RandomSource
	notifier   Notifier
	recorder   Recorder
	sequencer  Sequencer
	supervisor *TimeoutSupervisor
	allowed    map[int64]struct{}
}

func NewService(cfg Config, deps Deps) *Service {
	def := DefaultConfig()
	if cfg.MinPlayers <= 0 {
		cfg.MinPlayers = def.MinPlayers
	}
	if cfg.MaxPlayers <= 0 {
		cfg.MaxPlayers = def.MaxPlayers
	}

	s := &Service{
		cfg:       cfg,
		registry:  NewRegistry(),
		ledger:    deps.Ledger,
		dice:      deps.Dice,
		notifier:  deps.Notifier,
		recorder:  deps.Recorder,
		sequencer: deps.Sequencer,
	}
	if s.dice == nil {
		s.dice = NewCryptoDie(DefaultDieFaces)
	}
	if s.notifier == nil {
		s.notifier = nopNotifier{}
	}
	if s.recorder == nil {
		s.recorder = nopRecorder{}
	}
	if s.sequencer == nil {
		s.sequencer = &CounterSequencer{}
	}
	if len(cfg.AllowedRooms) > 0 {
		s.allowed = make(map[int64]struct{}, len(cfg.AllowedRooms))
		for _, roomID := range cfg.AllowedRooms {
			s.allowed[roomID] = struct{}{}
		}
	}
	s.supervisor = newTimeoutSupervisor(cfg.ChoiceTimeout, s.onChoiceTimeout)
	return s
}

type StartRequest struct {
	RoomID  int64
	HostID  int64
	Bet     int64
	Players int
}

// Start opens a session in a room. The host joins automatically and the
// stake is debited up front.
func (s *Service) Start(ctx context.Context, req StartRequest) (*Snapshot, error) {
	if req.Bet <= 0 {
		return nil, appErr.ErrInvalidBet
	}
	if req.Players < s.cfg.MinPlayers || req.Players > s.cfg.MaxPlayers {
		return nil, fmt.Errorf("%w: players must be between %d and %d",
			appErr.ErrInvalidPlayerCount, s.cfg.MinPlayers, s.cfg.MaxPlayers)
	}
	// bet*players is the pot and must fit in int64.
	if req.Bet > math.MaxInt64/int64(req.Players) {
		return nil, fmt.Errorf("%w: bet %d too large for %d players", appErr.ErrInvalidBet, req.Bet, req.Players)
	}
	if s.allowed != nil {
		if _, ok := s.allowed[req.RoomID]; !ok {
			return nil, appErr.ErrRoomNotAllowed
		}
	}
	if s.registry.Occupied(req.RoomID) {
		return nil, appErr.ErrRoomBusy
	}
	if err := s.checkFunds(ctx, req.HostID, req.Bet); err != nil {
		return nil, err
	}

	seq, err := s.sequencer.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("next session tag: %w", err)
	}

	sess, err := s.registry.Create(req.RoomID, seq, req.Bet, req.Players, req.HostID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	if err := s.ledger.Debit(ctx, req.HostID, req.Bet, s.entryLocked(sess, model.BillingStake)); err != nil {
		sess.closed = true
		s.registry.Remove(sess)
		return nil, err
	}
	sess.roster = append(sess.roster, req.HostID)

	logger.Log.Info("dice session started",
		zap.Int64("roomID", sess.roomID),
		zap.String("tag", sess.tag),
		zap.Int64("hostID", req.HostID),
		zap.Int64("bet", req.Bet),
		zap.Int("capacity", req.Players),
	)
	s.observe(ctx, sess, "session_started", req.HostID,
		fmt.Sprintf("bet=%d players=%d", req.Bet, req.Players))

	snap := sess.snapshotLocked()
	s.notify("roster_changed", sess, s.notifier.RosterChanged(ctx, snap))
	return &snap, nil
}

// Join adds userID to the recruiting session of roomID. The join that
// fills the roster starts the first roll before returning.
func (s *Service) Join(ctx context.Context, roomID, userID int64) (*Snapshot, error) {
	sess, err := s.lockSession(roomID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	if sess.inRosterLocked(userID) {
		return nil, appErr.ErrAlreadyJoined
	}
	if sess.phase != PhaseRecruiting || sess.fullLocked() {
		return nil, appErr.ErrSessionFull
	}
	if err := s.checkFunds(ctx, userID, sess.bet); err != nil {
		return nil, err
	}
	if err := s.ledger.Debit(ctx, userID, sess.bet, s.entryLocked(sess, model.BillingStake)); err != nil {
		return nil, err
	}
	sess.roster = append(sess.roster, userID)

	logger.Log.Info("dice player joined",
		zap.Int64("roomID", roomID),
		zap.String("tag", sess.tag),
		zap.Int64("userID", userID),
		zap.Int("joined", len(sess.roster)),
		zap.Int("capacity", sess.capacity),
	)
	s.observe(ctx, sess, "joined", userID, fmt.Sprintf("%d/%d", len(sess.roster), sess.capacity))
	s.notify("roster_changed", sess, s.notifier.RosterChanged(ctx, sess.snapshotLocked()))

	if sess.fullLocked() {
		s.startFirstRoundLocked(ctx, sess)
	}
	snap := sess.snapshotLocked()
	return &snap, nil
}

// Cancel withdraws userID while recruiting. A host cancel aborts the
// whole session and refunds every joined participant.
func (s *Service) Cancel(ctx context.Context, roomID, userID int64) (*Snapshot, error) {
	sess, err := s.lockSession(roomID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	if !sess.inRosterLocked(userID) {
		return nil, appErr.ErrNotJoined
	}
	if sess.phase != PhaseRecruiting {
		return nil, appErr.ErrInvalidPhase
	}

	if userID == sess.host {
		return s.abortLocked(ctx, sess, OutcomeCancelled, model.BillingCancelRefund)
	}

	if err := s.ledger.Credit(ctx, userID, sess.bet, s.entryLocked(sess, model.BillingCancelRefund)); err != nil {
		return nil, err
	}
	sess.removeFromRosterLocked(userID)

	logger.Log.Info("dice player cancelled",
		zap.Int64("roomID", roomID),
		zap.String("tag", sess.tag),
		zap.Int64("userID", userID),
	)
	s.observe(ctx, sess, "cancelled_join", userID, "")

	snap := sess.snapshotLocked()
	s.notify("roster_changed", sess, s.notifier.RosterChanged(ctx, snap))
	return &snap, nil
}

// Get returns the public view of the session in roomID.
func (s *Service) Get(ctx context.Context, roomID int64) (*Snapshot, error) {
	sess, err := s.lockSession(roomID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	snap := sess.snapshotLocked()
	return &snap, nil
}

// PrivateView is what one participant may see: the public session plus
// its own rolls and, while it has not answered, its pending prompt.
type PrivateView struct {
	Session Snapshot      `json:"session"`
	Rolls   []RollNotice  `json:"rolls,omitempty"`
	Prompt  *ChoicePrompt `json:"prompt,omitempty"`
}

// PrivateView lets a reconnecting participant recover its rolls and
// pending choice. Non-participants get the public session only.
func (s *Service) PrivateView(ctx context.Context, roomID, userID int64) (*PrivateView, error) {
	sess, err := s.lockSession(roomID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	view := &PrivateView{Session: sess.snapshotLocked()}
	if !sess.inRosterLocked(userID) {
		return view, nil
	}
	if first, ok := sess.firstRoll[userID]; ok {
		view.Rolls = append(view.Rolls, RollNotice{Tag: sess.tag, Round: 1, Value: first, Total: first})
		if second, ok := sess.secondRoll[userID]; ok {
			view.Rolls = append(view.Rolls, RollNotice{Tag: sess.tag, Round: 2, Value: second, Total: first + second})
		}
	}
	if sess.phase == PhaseAwaitingChoice && !sess.hasRespondedLocked(userID) {
		view.Prompt = &ChoicePrompt{
			Tag:      sess.tag,
			UserID:   userID,
			Options:  []Choice{ChoiceFold, ChoiceContinue},
			Deadline: sess.deadline,
		}
	}
	return view, nil
}

// Shutdown aborts every open session and refunds what each participant
// still has at stake.
func (s *Service) Shutdown(ctx context.Context) {
	for _, roomID := range s.registry.Rooms() {
		sess, err := s.lockSession(roomID)
		if err != nil {
			continue
		}
		if _, err := s.abortLocked(ctx, sess, OutcomeAborted, model.BillingCancelRefund); err != nil {
			logger.Log.Error("dice session abort failed",
				zap.Int64("roomID", roomID),
				zap.Error(err),
			)
		}
		sess.mu.Unlock()
	}
}

// abortLocked refunds each participant's outstanding stake and closes
// the session.
func (s *Service) abortLocked(ctx context.Context, sess *Session, outcome Outcome, billing string) (*Snapshot, error) {
	s.supervisor.disarmLocked(sess)
	for _, uid := range sess.roster {
		owed := sess.bet - sess.refunds[uid]
		if owed <= 0 {
			continue
		}
		entry := s.entryLocked(sess, billing)
		entry.Meta["outcome"] = string(outcome)
		if err := s.ledger.Credit(ctx, uid, owed, entry); err != nil {
			logger.Log.Error("dice refund failed",
				zap.Int64("roomID", sess.roomID),
				zap.String("tag", sess.tag),
				zap.Int64("userID", uid),
				zap.Int64("amount", owed),
				zap.Error(err),
			)
			continue
		}
		sess.refunds[uid] += owed
	}

	report := sess.baseReportLocked(outcome)
	report.Pot = 0
	report.Forfeited = report.Staked - report.Refunded
	s.closeLocked(sess)

	logger.Log.Info("dice session aborted",
		zap.Int64("roomID", sess.roomID),
		zap.String("tag", sess.tag),
		zap.String("outcome", string(outcome)),
	)
	s.observe(ctx, sess, string(outcome), sess.host, report.Summary())

	snap := sess.snapshotLocked()
	s.notify("cancelled", sess, s.notifier.Cancelled(ctx, snap, report))
	s.record(ctx, sess, report)
	return &snap, nil
}

// lockSession returns the open session of roomID with its lock held.
func (s *Service) lockSession(roomID int64) (*Session, error) {
	sess, err := s.registry.Get(roomID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	if sess.closed {
		sess.mu.Unlock()
		return nil, appErr.ErrSessionNotFound
	}
	return sess, nil
}

func (s *Service) checkFunds(ctx context.Context, userID, bet int64) error {
	balance, err := s.ledger.Balance(ctx, userID)
	if err != nil {
		return err
	}
	if balance < bet {
		return fmt.Errorf("%w: balance %d < bet %d", appErr.ErrInsufficientBalance, balance, bet)
	}
	return nil
}

// closeLocked ends the session and removes it from the registry exactly once.
func (s *Service) closeLocked(sess *Session) {
	s.supervisor.disarmLocked(sess)
	sess.phase = PhaseResolved
	sess.closed = true
	s.registry.Remove(sess)
}

// entryLocked describes a balance move of sess for the billing log.
func (s *Service) entryLocked(sess *Session, kind string) wallet.Entry {
	return wallet.Entry{
		Type:   kind,
		RoomID: sess.roomID,
		Tag:    sess.tag,
		Meta: map[string]interface{}{
			"bet":      sess.bet,
			"capacity": sess.capacity,
			"phase":    string(sess.phase),
		},
	}
}

func (s *Service) observe(ctx context.Context, sess *Session, kind string, userID int64, detail string) {
	event := Event{
		ID:     uuid.NewString(),
		RoomID: sess.roomID,
		Tag:    sess.tag,
		Kind:   kind,
		UserID: userID,
		Detail: detail,
		At:     time.Now(),
	}
	s.notify("observe", sess, s.notifier.Observe(ctx, event))
}

func (s *Service) notify(what string, sess *Session, err error) {
	if err == nil {
		return
	}
	logger.Log.Warn("dice notify failed",
		zap.String("event", what),
		zap.Int64("roomID", sess.roomID),
		zap.String("tag", sess.tag),
		zap.Error(err),
	)
}

func (s *Service) record(ctx context.Context, sess *Session, report Report) {
	if err := s.recorder.Record(ctx, report); err != nil {
		logger.Log.Warn("dice record failed",
			zap.Int64("roomID", sess.roomID),
			zap.String("tag", sess.tag),
			zap.Error(err),
		)
	}
}
