package dice

import "sort"

// SessionOf returns the registered session of roomID, or nil.
func (s *Service) SessionOf(roomID int64) *Session {
	sess, err := s.registry.Get(roomID)
	if err != nil {
		return nil
	}
	return sess
}

// FireChoiceTimeout runs the deadline handler as if the timer armed for
// round had fired.
func (s *Service) FireChoiceTimeout(sess *Session, round int) {
	s.onChoiceTimeout(sess, round)
}

func (s *Service) OpenSessions() int {
	return s.registry.Len()
}

func (sess *Session) CurrentRound() int {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.round
}

// ResponseState copies the folded and responded sets, sorted by user id.
func (sess *Session) ResponseState() (folded, responded []int64) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	for uid := range sess.folded {
		folded = append(folded, uid)
	}
	for uid := range sess.responded {
		responded = append(responded, uid)
	}
	sort.Slice(folded, func(i, j int) bool { return folded[i] < folded[j] })
	sort.Slice(responded, func(i, j int) bool { return responded[i] < responded[j] })
	return folded, responded
}

// MarkResponded records userID as responded without any roster check.
func (sess *Session) MarkResponded(userID int64) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.responded[userID] = struct{}{}
}
