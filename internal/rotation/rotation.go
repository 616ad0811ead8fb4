// Package rotation implements the trash duty rotation and penalty state
// machine. Everything here is pure: functions take a validated snapshot of the
// persisted state and return the next state or a projection of it. All I/O
// (store reads/writes, SMS fan-out) lives in internal/duty.
package rotation

import (
	"errors"

	"github.com/danieljbk/regent-house-trash-duty-notif-bot/pkg/models"
)

// PenaltyLength is the total number of weekly ticks a penalty consumes.
// A fresh report writes WeeksRemaining = PenaltyLength - 1 because the
// triggering week counts as the first week of service.
const PenaltyLength = 3

// ErrEmptyRoster is returned when the persisted roster is missing or empty.
var ErrEmptyRoster = errors.New("roster is empty")

// Penalty marks one member as serving extra consecutive duty weeks.
// WeeksRemaining counts additional weeks beyond the current one; a record
// with WeeksRemaining == 0 means the final week is still in progress.
type Penalty struct {
	OffenderIndex  int `json:"offenderIndex"`
	WeeksRemaining int `json:"weeksRemaining"`
}

// Phase is the explicit rotation state. The original logic encoded this as
// nested conditionals spread across three handlers; a single tagged value
// keeps the branching in one place.
type Phase int

const (
	Normal Phase = iota
	Penalized
)

// State is a validated snapshot of (roster, pointer, penalty).
// Build one with NewState; the zero value is not usable.
type State struct {
	Roster  []models.Member
	Pointer int
	Penalty *Penalty

	// StalePenalty reports that the persisted penalty record referenced an
	// out-of-range offender (e.g. after a roster edit) and was discarded.
	// The next mutating handler deletes the record; queries just ignore it.
	StalePenalty bool
}

// NewState validates persisted values into a State. An out-of-range pointer is
// normalized mod roster length; an invalid penalty record is discarded and
// flagged via StalePenalty rather than acted on.
func NewState(roster []models.Member, pointer int, penalty *Penalty) (State, error) {
	n := len(roster)
	if n == 0 {
		return State{}, ErrEmptyRoster
	}
	s := State{Roster: roster, Pointer: mod(pointer, n)}
	if penalty != nil {
		if penalty.OffenderIndex < 0 || penalty.OffenderIndex >= n || penalty.WeeksRemaining < 0 {
			s.StalePenalty = true
		} else {
			p := *penalty
			s.Penalty = &p
		}
	}
	return s, nil
}

// Phase returns Penalized iff a valid penalty record is present. Record
// presence, not WeeksRemaining > 0, is what marks the final week as still
// under penalty; testing the counter alone made the final week
// indistinguishable from no penalty at all.
func (s State) Phase() Phase {
	if s.Penalty != nil {
		return Penalized
	}
	return Normal
}

// OnDuty returns this week's assignee: the offender while a penalty is in
// effect, otherwise the member at the rotation pointer.
func (s State) OnDuty() models.Member {
	if s.Penalty != nil {
		return s.Roster[s.Penalty.OffenderIndex]
	}
	return s.Roster[s.Pointer]
}

// LastWeek returns who held duty for the week just ended. The pointer never
// advances during a penalty, so from the first penalty week onward this is
// the offender, not the pre-penalty pointer holder.
func (s State) LastWeek() models.Member {
	if s.Penalty != nil {
		return s.Roster[s.Penalty.OffenderIndex]
	}
	n := len(s.Roster)
	return s.Roster[mod(s.Pointer-1, n)]
}

// Upcoming projects the next k weekly assignments: the offender once per
// remaining penalty week, then the normal rotation resuming from the pointer's
// successor. With k >= len(roster) the sequence wraps and repeats members;
// the rotation is continuous, not an error.
func (s State) Upcoming(k int) []models.Member {
	if k <= 0 {
		k = models.DefaultUpcomingWeeks
	}
	n := len(s.Roster)
	out := make([]models.Member, 0, k)
	if s.Penalty != nil {
		for i := 0; i < s.Penalty.WeeksRemaining && len(out) < k; i++ {
			out = append(out, s.Roster[s.Penalty.OffenderIndex])
		}
	}
	for step := 1; len(out) < k; step++ {
		out = append(out, s.Roster[mod(s.Pointer+step, n)])
	}
	return out
}

// Tick applies one weekly advance and returns the next state.
//
//	Penalized, weeks remaining  -> decrement only; the pointer stays frozen.
//	Penalized, final week done  -> drop the record and advance the pointer.
//	Normal                      -> advance the pointer.
//
// A stale record behaves like Normal; the caller deletes the record when the
// returned state carries no penalty.
func (s State) Tick() State {
	n := len(s.Roster)
	next := s
	next.StalePenalty = false
	if s.Penalty != nil && s.Penalty.WeeksRemaining > 0 {
		p := *s.Penalty
		p.WeeksRemaining--
		next.Penalty = &p
		return next
	}
	next.Penalty = nil
	next.Pointer = mod(s.Pointer+1, n)
	return next
}

// ReportOutcome describes what a missed-duty report did.
type ReportOutcome struct {
	Applied  bool
	Offender models.Member
}

// Report applies a missed-duty report. While any valid penalty is in place the
// report is a no-op, including on the penalty's final week; double-penalizing
// someone already serving is the failure mode this guards against. Otherwise
// the offender is whoever held the slot for the week just ending, and the
// pointer is retargeted to the offender so that normal rotation resumes from
// their successor once the penalty lapses.
func (s State) Report() (State, ReportOutcome) {
	n := len(s.Roster)
	if s.Penalty != nil {
		return s, ReportOutcome{Applied: false, Offender: s.Roster[s.Penalty.OffenderIndex]}
	}
	idx := mod(s.Pointer-1, n)
	next := s
	next.StalePenalty = false
	next.Penalty = &Penalty{OffenderIndex: idx, WeeksRemaining: PenaltyLength - 1}
	next.Pointer = idx
	return next, ReportOutcome{Applied: true, Offender: s.Roster[idx]}
}

// PenaltyStatus classifies the penalty for display. Active means the offender
// currently holds the pointer (our report path always writes this shape);
// Pending is a queued record whose offender is not yet the pointer holder, as
// written by an older report path that diverted only at the next tick. The
// displayed week count includes the in-progress week when Active and is the
// raw stored value when Pending.
func (s State) PenaltyStatus() (status string, displayWeeks int) {
	if s.Penalty == nil {
		return models.PenaltyNone, 0
	}
	if s.Penalty.OffenderIndex == s.Pointer {
		return models.PenaltyActive, s.Penalty.WeeksRemaining + 1
	}
	return models.PenaltyPending, s.Penalty.WeeksRemaining
}

func mod(i, n int) int {
	return ((i % n) + n) % n
}
