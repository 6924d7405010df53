package dice

import (
	"context"
	"time"

	"dice-service/pkg/logger"

	"go.uber.org/zap"
)

const DefaultChoiceTimeout = 300 * time.Second

// TimeoutSupervisor arms one choice deadline per session round. A fired
// deadline only acts when the session is still open, still awaiting
// choices and still in the round it was armed for; everything is checked
// under the session lock, so it can never race natural completion.
type TimeoutSupervisor struct {
	timeout time.Duration
	fire    func(sess *Session, round int)
}

func newTimeoutSupervisor(timeout time.Duration, fire func(*Session, int)) *TimeoutSupervisor {
	if timeout <= 0 {
		timeout = DefaultChoiceTimeout
	}
	return &TimeoutSupervisor{timeout: timeout, fire: fire}
}

func (t *TimeoutSupervisor) armLocked(sess *Session) {
	t.disarmLocked(sess)
	sess.round++
	round := sess.round
	sess.deadline = time.Now().Add(t.timeout)
	sess.timer = time.AfterFunc(t.timeout, func() {
		t.fire(sess, round)
	})
}

func (t *TimeoutSupervisor) disarmLocked(sess *Session) {
	if sess.timer != nil {
		sess.timer.Stop()
		sess.timer = nil
	}
	sess.deadline = time.Time{}
}

// onChoiceTimeout force-folds every participant who has not answered.
// Timeout folds are not refunded.
func (s *Service) onChoiceTimeout(sess *Session, round int) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.closed || sess.phase != PhaseAwaitingChoice || sess.round != round {
		return
	}
	sess.timer = nil

	ctx := context.Background()
	forced := make([]int64, 0)
	for _, uid := range sess.roster {
		if sess.hasRespondedLocked(uid) {
			continue
		}
		sess.folded[uid] = ExitTimeout
		sess.responded[uid] = struct{}{}
		forced = append(forced, uid)
		s.observe(ctx, sess, "timeout_fold", uid, "")
	}

	logger.Log.Warn("choice timeout auto-fold",
		zap.Int64("roomID", sess.roomID),
		zap.String("tag", sess.tag),
		zap.Int("forced", len(forced)),
	)

	s.advanceIfCompleteLocked(ctx, sess)
}
