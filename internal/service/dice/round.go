package dice

import (
	"context"
	"fmt"

	"dice-service/internal/model"
	appErr "dice-service/pkg/errors"
	"dice-service/pkg/logger"

	"go.uber.org/zap"
)

// startFirstRoundLocked rolls once for every participant in roster order,
// offers each the fold/continue choice and arms the choice deadline.
func (s *Service) startFirstRoundLocked(ctx context.Context, sess *Session) {
	sess.phase = PhaseRollingFirst
	s.notify("round_started", sess, s.notifier.RoundStarted(ctx, sess.snapshotLocked(), 1))

	s.supervisor.armLocked(sess)
	deadline := sess.deadline
	for _, uid := range sess.roster {
		value := s.dice.RollDie()
		sess.firstRoll[uid] = value

		s.notify("private_roll", sess, s.notifier.PrivateRoll(ctx, sess.roomID, uid, RollNotice{
			Tag:   sess.tag,
			Round: 1,
			Value: value,
			Total: value,
		}))
		s.notify("present_choice", sess, s.notifier.PresentChoice(ctx, sess.roomID, uid, ChoicePrompt{
			Tag:      sess.tag,
			UserID:   uid,
			Options:  []Choice{ChoiceFold, ChoiceContinue},
			Deadline: deadline,
		}))
		s.observe(ctx, sess, "first_roll", uid, fmt.Sprintf("%d", value))
	}
	sess.phase = PhaseAwaitingChoice

	logger.Log.Info("dice first round rolled",
		zap.Int64("roomID", sess.roomID),
		zap.String("tag", sess.tag),
		zap.Int("players", len(sess.roster)),
		zap.Time("deadline", deadline),
	)
}

// Fold answers targetID's pending choice with a fold and pays back half
// the stake. Only targetID may answer its own choice.
func (s *Service) Fold(ctx context.Context, roomID, actorID, targetID int64) (*Snapshot, error) {
	sess, err := s.lockChoice(roomID, actorID, targetID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	refund := FoldRefund(sess.bet)
	if refund > 0 {
		entry := s.entryLocked(sess, model.BillingFoldRefund)
		entry.Meta["firstRoll"] = sess.firstRoll[targetID]
		if err := s.ledger.Credit(ctx, targetID, refund, entry); err != nil {
			return nil, err
		}
		sess.refunds[targetID] += refund
	}
	sess.folded[targetID] = ExitFold
	sess.responded[targetID] = struct{}{}

	logger.Log.Info("dice player folded",
		zap.Int64("roomID", roomID),
		zap.String("tag", sess.tag),
		zap.Int64("userID", targetID),
		zap.Int64("refund", refund),
	)
	s.observe(ctx, sess, "fold", targetID, fmt.Sprintf("refund=%d", refund))

	return s.afterResponseLocked(ctx, sess), nil
}

// Continue answers targetID's pending choice by staying in.
func (s *Service) Continue(ctx context.Context, roomID, actorID, targetID int64) (*Snapshot, error) {
	sess, err := s.lockChoice(roomID, actorID, targetID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	sess.responded[targetID] = struct{}{}

	logger.Log.Info("dice player continued",
		zap.Int64("roomID", roomID),
		zap.String("tag", sess.tag),
		zap.Int64("userID", targetID),
	)
	s.observe(ctx, sess, "continue", targetID, "")

	return s.afterResponseLocked(ctx, sess), nil
}

// Quit abandons the round without any refund. It is open to every
// participant that has not folded, including those who already continued.
func (s *Service) Quit(ctx context.Context, roomID, userID int64) (*Snapshot, error) {
	sess, err := s.lockSession(roomID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	if !sess.inRosterLocked(userID) {
		return nil, appErr.ErrNotJoined
	}
	if sess.phase != PhaseAwaitingChoice {
		return nil, appErr.ErrInvalidPhase
	}
	if sess.isFoldedLocked(userID) {
		return nil, appErr.ErrNotActive
	}

	sess.folded[userID] = ExitQuit
	sess.responded[userID] = struct{}{}

	logger.Log.Info("dice player quit",
		zap.Int64("roomID", roomID),
		zap.String("tag", sess.tag),
		zap.Int64("userID", userID),
	)
	s.observe(ctx, sess, "quit", userID, "")

	return s.afterResponseLocked(ctx, sess), nil
}

// lockChoice locks the session and checks that targetID may still answer.
func (s *Service) lockChoice(roomID, actorID, targetID int64) (*Session, error) {
	if actorID != targetID {
		return nil, appErr.ErrWrongUser
	}
	sess, err := s.lockSession(roomID)
	if err != nil {
		return nil, err
	}
	var cerr error
	switch {
	case !sess.inRosterLocked(targetID):
		cerr = appErr.ErrNotJoined
	case sess.phase != PhaseAwaitingChoice:
		cerr = appErr.ErrInvalidPhase
	case sess.hasRespondedLocked(targetID):
		cerr = appErr.ErrAlreadyResponded
	}
	if cerr != nil {
		sess.mu.Unlock()
		return nil, cerr
	}
	return sess, nil
}

func (s *Service) afterResponseLocked(ctx context.Context, sess *Session) *Snapshot {
	s.notify("roster_changed", sess, s.notifier.RosterChanged(ctx, sess.snapshotLocked()))
	s.advanceIfCompleteLocked(ctx, sess)
	snap := sess.snapshotLocked()
	return &snap
}

// advanceIfCompleteLocked resolves the session once every participant has
// answered. It is a no-op otherwise.
func (s *Service) advanceIfCompleteLocked(ctx context.Context, sess *Session) {
	if sess.closed || sess.phase != PhaseAwaitingChoice || !sess.allRespondedLocked() {
		return
	}
	s.supervisor.disarmLocked(sess)

	survivors := sess.survivorsLocked()
	switch len(survivors) {
	case 0:
		s.resolveNoWinnerLocked(ctx, sess)
	case 1:
		s.resolveImmediateLocked(ctx, sess, survivors[0])
	default:
		s.resolveSecondRollLocked(ctx, sess, survivors)
	}
}

func (s *Service) resolveNoWinnerLocked(ctx context.Context, sess *Session) {
	report := sess.baseReportLocked(OutcomeNoWinner)
	report.Forfeited = report.Pot
	s.finishLocked(ctx, sess, report)
}

func (s *Service) resolveImmediateLocked(ctx context.Context, sess *Session, winner int64) {
	report := sess.baseReportLocked(OutcomePayout)
	report.Immediate = true
	report.markWinners([]int64{winner}, report.Pot, 0)
	s.payLocked(ctx, sess, &report)
	s.finishLocked(ctx, sess, report)
}

func (s *Service) resolveSecondRollLocked(ctx context.Context, sess *Session, survivors []int64) {
	sess.phase = PhaseRollingSecond
	s.notify("round_started", sess, s.notifier.RoundStarted(ctx, sess.snapshotLocked(), 2))

	totals := make(map[int64]int, len(survivors))
	for _, uid := range survivors {
		value := s.dice.RollDie()
		sess.secondRoll[uid] = value
		totals[uid] = sess.firstRoll[uid] + value

		s.notify("private_roll", sess, s.notifier.PrivateRoll(ctx, sess.roomID, uid, RollNotice{
			Tag:   sess.tag,
			Round: 2,
			Value: value,
			Total: totals[uid],
		}))
		s.observe(ctx, sess, "second_roll", uid, fmt.Sprintf("%d + %d = %d", sess.firstRoll[uid], value, totals[uid]))
	}

	report := sess.baseReportLocked(OutcomePayout)
	winners := TopScorers(survivors, totals)
	share, remainder := SplitPot(report.Pot, len(winners))
	report.markWinners(winners, share, remainder)
	s.payLocked(ctx, sess, &report)
	s.finishLocked(ctx, sess, report)
}

// payLocked credits every winner its share. A failed credit is logged;
// payouts already committed are never rolled back.
func (s *Service) payLocked(ctx context.Context, sess *Session, report *Report) {
	for i := range report.Players {
		line := &report.Players[i]
		if !line.Winner || line.Payout <= 0 {
			continue
		}
		entry := s.entryLocked(sess, model.BillingPayout)
		entry.Meta["pot"] = report.Pot
		entry.Meta["winners"] = len(report.Winners)
		entry.Meta["immediate"] = report.Immediate
		entry.Meta["total"] = line.Total
		if err := s.ledger.Credit(ctx, line.UserID, line.Payout, entry); err != nil {
			logger.Log.Error("dice payout failed",
				zap.Int64("roomID", sess.roomID),
				zap.String("tag", sess.tag),
				zap.Int64("userID", line.UserID),
				zap.Int64("amount", line.Payout),
				zap.Error(err),
			)
		}
	}
}

func (s *Service) finishLocked(ctx context.Context, sess *Session, report Report) {
	s.closeLocked(sess)

	logger.Log.Info("dice session resolved",
		zap.Int64("roomID", sess.roomID),
		zap.String("tag", sess.tag),
		zap.String("outcome", string(report.Outcome)),
		zap.Int64("pot", report.Pot),
		zap.Int64s("winners", report.Winners),
		zap.Int64("remainder", report.Remainder),
	)
	s.observe(ctx, sess, "resolved", 0, report.Summary())
	s.notify("resolved", sess, s.notifier.Resolved(ctx, sess.snapshotLocked(), report))
	s.record(ctx, sess, report)
}
