package dice

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Outcome string

const (
	OutcomePayout    Outcome = "payout"
	OutcomeNoWinner  Outcome = "no_winner"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeAborted   Outcome = "aborted"
)

// PlayerResult is one roster line of a report.
type PlayerResult struct {
	UserID     int64      `json:"userId,string"`
	Exit       ExitReason `json:"exit,omitempty"`
	FirstRoll  int        `json:"firstRoll,omitempty"`
	SecondRoll int        `json:"secondRoll,omitempty"`
	Total      int        `json:"total,omitempty"`
	Refund     int64      `json:"refund"`
	Payout     int64      `json:"payout"`
	Winner     bool       `json:"winner"`
}

// Status renders the line the way results are announced:
// "fold", "12" or "12 + 7 = 19".
func (p PlayerResult) Status() string {
	switch {
	case p.Exit != "":
		return string(p.Exit)
	case p.SecondRoll > 0:
		return fmt.Sprintf("%d + %d = %d", p.FirstRoll, p.SecondRoll, p.Total)
	case p.FirstRoll > 0:
		return strconv.Itoa(p.FirstRoll)
	default:
		return "-"
	}
}

// Report is the terminal accounting of a session.
//
// Staked == Refunded + Share*len(Winners) + Remainder + Forfeited always holds.
type Report struct {
	RoomID     int64          `json:"roomId,string"`
	Tag        string         `json:"tag"`
	HostID     int64          `json:"hostId,string"`
	Bet        int64          `json:"bet"`
	Capacity   int            `json:"capacity"`
	Outcome    Outcome        `json:"outcome"`
	Immediate  bool           `json:"immediate"`
	Staked     int64          `json:"staked"`
	Refunded   int64          `json:"refunded"`
	Pot        int64          `json:"pot"`
	Share      int64          `json:"share"`
	Remainder  int64          `json:"remainder"`
	Forfeited  int64          `json:"forfeited"`
	Winners    []int64        `json:"winners"`
	Players    []PlayerResult `json:"players"`
	ResolvedAt time.Time      `json:"resolvedAt"`
}

func (r Report) IsWinner(userID int64) bool {
	for _, uid := range r.Winners {
		if uid == userID {
			return true
		}
	}
	return false
}

// Summary renders one line per participant, winners marked with "*".
func (r Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s pot=%d", r.Tag, r.Outcome, r.Pot)
	for _, p := range r.Players {
		mark := " "
		if p.Winner {
			mark = "*"
		}
		fmt.Fprintf(&b, "\n%s %d: %s", mark, p.UserID, p.Status())
	}
	return b.String()
}

// Pot is the amount at stake after refunds already paid back.
func Pot(bet int64, rosterSize int, refunded int64) int64 {
	return bet*int64(rosterSize) - refunded
}

// FoldRefund is what a voluntary fold pays back.
func FoldRefund(bet int64) int64 {
	return bet / 2
}

// SplitPot divides pot evenly; the remainder is never distributed.
func SplitPot(pot int64, winners int) (share, remainder int64) {
	if winners <= 0 {
		return 0, pot
	}
	share = pot / int64(winners)
	return share, pot - share*int64(winners)
}

// TopScorers returns the users in order with the highest total, keeping
// order so ties are reported in roster order.
func TopScorers(order []int64, totals map[int64]int) []int64 {
	best := 0
	for _, uid := range order {
		if t, ok := totals[uid]; ok && t > best {
			best = t
		}
	}
	winners := make([]int64, 0, 1)
	for _, uid := range order {
		if t, ok := totals[uid]; ok && t == best {
			winners = append(winners, uid)
		}
	}
	return winners
}

func (s *Session) baseReportLocked(outcome Outcome) Report {
	refunded := s.refundedLocked()
	report := Report{
		RoomID:     s.roomID,
		Tag:        s.tag,
		HostID:     s.host,
		Bet:        s.bet,
		Capacity:   s.capacity,
		Outcome:    outcome,
		Staked:     s.bet * int64(len(s.roster)),
		Refunded:   refunded,
		Pot:        Pot(s.bet, len(s.roster), refunded),
		Winners:    []int64{},
		Players:    make([]PlayerResult, 0, len(s.roster)),
		ResolvedAt: time.Now(),
	}
	for _, uid := range s.roster {
		line := PlayerResult{
			UserID:    uid,
			Exit:      s.folded[uid],
			FirstRoll: s.firstRoll[uid],
			Refund:    s.refunds[uid],
		}
		if second, ok := s.secondRoll[uid]; ok {
			line.SecondRoll = second
			line.Total = line.FirstRoll + second
		}
		report.Players = append(report.Players, line)
	}
	return report
}

// markWinners applies share to every winner line.
func (r *Report) markWinners(winners []int64, share, remainder int64) {
	r.Winners = winners
	r.Share = share
	r.Remainder = remainder
	for i := range r.Players {
		if r.IsWinner(r.Players[i].UserID) {
			r.Players[i].Winner = true
			r.Players[i].Payout = share
		}
	}
}
