package rotation

import (
	"testing"

	"github.com/danieljbk/regent-house-trash-duty-notif-bot/pkg/models"
)

func roster3() []models.Member {
	return []models.Member{
		{Name: "Alice", Phone: "+15550001"},
		{Name: "Bob", Phone: "+15550002"},
		{Name: "Carol", Phone: "+15550003"},
	}
}

func TestNewStateValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewState(nil, 0, nil); err != ErrEmptyRoster {
		t.Fatalf("empty roster: got err=%v, want ErrEmptyRoster", err)
	}

	// Out-of-range pointer is normalized mod n.
	s, err := NewState(roster3(), 7, nil)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	if s.Pointer != 1 {
		t.Fatalf("pointer: got %d, want 1", s.Pointer)
	}

	// Penalty referencing a member beyond the (shrunk) roster is discarded
	// and flagged stale.
	s, err = NewState(roster3(), 0, &Penalty{OffenderIndex: 5, WeeksRemaining: 1})
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	if s.Penalty != nil || !s.StalePenalty {
		t.Fatalf("stale penalty: got penalty=%+v stale=%v, want nil/true", s.Penalty, s.StalePenalty)
	}
	if s.Phase() != Normal {
		t.Fatal("stale penalty must leave the state Normal")
	}

	// Negative weeks is equally invalid.
	s, _ = NewState(roster3(), 0, &Penalty{OffenderIndex: 0, WeeksRemaining: -1})
	if s.Penalty != nil || !s.StalePenalty {
		t.Fatalf("negative weeks: got penalty=%+v stale=%v, want nil/true", s.Penalty, s.StalePenalty)
	}
}

func TestTickNormalAdvance(t *testing.T) {
	t.Parallel()

	// Scenario: [Alice, Bob, Carol], pointer 0, no penalty -> Bob on duty, pointer 1.
	s, _ := NewState(roster3(), 0, nil)
	next := s.Tick()
	if next.Pointer != 1 {
		t.Fatalf("pointer after tick: got %d, want 1", next.Pointer)
	}
	if got := next.OnDuty().Name; got != "Bob" {
		t.Fatalf("on duty after tick: got %s, want Bob", got)
	}

	// Pointer advances by exactly 1 mod n for every starting position.
	for p := 0; p < 3; p++ {
		s, _ := NewState(roster3(), p, nil)
		next := s.Tick()
		if next.Pointer != (p+1)%3 {
			t.Fatalf("pointer %d: advanced to %d, want %d", p, next.Pointer, (p+1)%3)
		}
		if next.OnDuty() != next.Roster[(p+1)%3] {
			t.Fatalf("pointer %d: on duty %v, want roster[%d]", p, next.OnDuty(), (p+1)%3)
		}
	}
}

func TestTickPenaltyFreezesPointer(t *testing.T) {
	t.Parallel()

	s, _ := NewState(roster3(), 1, &Penalty{OffenderIndex: 1, WeeksRemaining: 2})
	for i := 0; i < 2; i++ {
		s = s.Tick()
		if s.Pointer != 1 {
			t.Fatalf("tick %d: pointer moved to %d during penalty", i, s.Pointer)
		}
		if s.Penalty == nil {
			t.Fatalf("tick %d: penalty dropped early", i)
		}
		if got := s.OnDuty().Name; got != "Bob" {
			t.Fatalf("tick %d: on duty %s, want offender Bob", i, got)
		}
	}
	if s.Penalty.WeeksRemaining != 0 {
		t.Fatalf("weeks remaining: got %d, want 0", s.Penalty.WeeksRemaining)
	}
}

func TestTickWeeksRemainingTrajectory(t *testing.T) {
	t.Parallel()

	// WeeksRemaining strictly decreases by 1 per tick; the record is deleted
	// exactly on the tick where it would go below 0, and that tick is Normal.
	s, _ := NewState(roster3(), 0, &Penalty{OffenderIndex: 0, WeeksRemaining: 2})
	for want := 1; want >= 0; want-- {
		s = s.Tick()
		if s.Penalty == nil || s.Penalty.WeeksRemaining != want {
			t.Fatalf("got penalty=%+v, want weeksRemaining=%d", s.Penalty, want)
		}
	}
	s = s.Tick()
	if s.Penalty != nil {
		t.Fatalf("penalty should be deleted, got %+v", s.Penalty)
	}
	if s.Pointer != 1 {
		t.Fatalf("pointer after penalty end: got %d, want 1", s.Pointer)
	}
	if s.Phase() != Normal {
		t.Fatal("expected Normal after penalty end")
	}
}

func TestTickFinalWeekDeletesAndAdvances(t *testing.T) {
	t.Parallel()

	// Scenario: penalty {offender 0, weeks 0} -> tick deletes the record,
	// pointer 0 -> 1, on duty roster[1].
	s, _ := NewState(roster3(), 0, &Penalty{OffenderIndex: 0, WeeksRemaining: 0})
	next := s.Tick()
	if next.Penalty != nil {
		t.Fatalf("penalty not deleted: %+v", next.Penalty)
	}
	if next.Pointer != 1 {
		t.Fatalf("pointer: got %d, want 1", next.Pointer)
	}
	if got := next.OnDuty().Name; got != "Bob" {
		t.Fatalf("on duty: got %s, want Bob", got)
	}
}

func TestTickStalePenaltyActsNormal(t *testing.T) {
	t.Parallel()

	s, _ := NewState(roster3(), 2, &Penalty{OffenderIndex: 9, WeeksRemaining: 1})
	next := s.Tick()
	if next.Penalty != nil || next.StalePenalty {
		t.Fatalf("stale record must not survive a tick: %+v stale=%v", next.Penalty, next.StalePenalty)
	}
	if next.Pointer != 0 {
		t.Fatalf("pointer: got %d, want 0", next.Pointer)
	}
}

func TestReportTargetsLastWeekHolder(t *testing.T) {
	t.Parallel()

	// Scenario: pointer 1, report -> offender (1-1+3)%3 = 0 = Alice;
	// penalty {0, 2}; pointer retargeted to 0.
	s, _ := NewState(roster3(), 1, nil)
	next, outcome := s.Report()
	if !outcome.Applied || outcome.Offender.Name != "Alice" {
		t.Fatalf("outcome: %+v, want applied for Alice", outcome)
	}
	if next.Penalty == nil || next.Penalty.OffenderIndex != 0 || next.Penalty.WeeksRemaining != PenaltyLength-1 {
		t.Fatalf("penalty: %+v, want {0 %d}", next.Penalty, PenaltyLength-1)
	}
	if next.Pointer != 0 {
		t.Fatalf("pointer: got %d, want 0", next.Pointer)
	}
	if got := next.OnDuty().Name; got != "Alice" {
		t.Fatalf("on duty: got %s, want Alice", got)
	}
	if got := next.LastWeek().Name; got != "Alice" {
		t.Fatalf("last week: got %s, want Alice", got)
	}
	if status, _ := next.PenaltyStatus(); status != models.PenaltyActive {
		t.Fatalf("status: got %s, want active", status)
	}
}

func TestReportDuringPenaltyIsNoOp(t *testing.T) {
	t.Parallel()

	for _, weeks := range []int{2, 1, 0} { // 0 = final week in progress
		s, _ := NewState(roster3(), 0, &Penalty{OffenderIndex: 0, WeeksRemaining: weeks})
		next, outcome := s.Report()
		if outcome.Applied {
			t.Fatalf("weeks=%d: report applied during active penalty", weeks)
		}
		if outcome.Offender.Name != "Alice" {
			t.Fatalf("weeks=%d: offender %s, want Alice", weeks, outcome.Offender.Name)
		}
		if next.Penalty == nil || next.Penalty.WeeksRemaining != weeks || next.Pointer != 0 {
			t.Fatalf("weeks=%d: state mutated by no-op report: %+v pointer=%d", weeks, next.Penalty, next.Pointer)
		}
	}
}

func TestReportWrapsAtRosterStart(t *testing.T) {
	t.Parallel()

	s, _ := NewState(roster3(), 0, nil)
	next, outcome := s.Report()
	if outcome.Offender.Name != "Carol" {
		t.Fatalf("offender: got %s, want Carol (wraps to end)", outcome.Offender.Name)
	}
	if next.Pointer != 2 {
		t.Fatalf("pointer: got %d, want 2", next.Pointer)
	}
}

func TestUpcoming(t *testing.T) {
	t.Parallel()

	// During a penalty with 2 future weeks the offender fills the first two
	// slots; then the rotation resumes from the pointer's successor, which is
	// exactly who the deletion tick will put on duty.
	s, _ := NewState(roster3(), 0, &Penalty{OffenderIndex: 0, WeeksRemaining: 2})
	got := s.Upcoming(3)
	want := []string{"Alice", "Alice", "Bob"}
	for i, m := range got {
		if m.Name != want[i] {
			t.Fatalf("upcoming[%d]: got %s, want %s (full: %v)", i, m.Name, want[i], got)
		}
	}

	// No penalty with K >= n wraps and repeats members.
	s, _ = NewState(roster3(), 1, nil)
	got = s.Upcoming(5)
	want = []string{"Carol", "Alice", "Bob", "Carol", "Alice"}
	for i, m := range got {
		if m.Name != want[i] {
			t.Fatalf("wrap upcoming[%d]: got %s, want %s", i, m.Name, want[i])
		}
	}

	// Upcoming never reflects the current week: final week in progress shows
	// zero offender slots before the resumed rotation.
	s, _ = NewState(roster3(), 0, &Penalty{OffenderIndex: 0, WeeksRemaining: 0})
	got = s.Upcoming(2)
	want = []string{"Bob", "Carol"}
	for i, m := range got {
		if m.Name != want[i] {
			t.Fatalf("final-week upcoming[%d]: got %s, want %s", i, m.Name, want[i])
		}
	}
}

func TestLastWeek(t *testing.T) {
	t.Parallel()

	s, _ := NewState(roster3(), 0, nil)
	if got := s.LastWeek().Name; got != "Carol" {
		t.Fatalf("normal last week: got %s, want Carol", got)
	}

	s, _ = NewState(roster3(), 2, &Penalty{OffenderIndex: 2, WeeksRemaining: 1})
	if got := s.LastWeek().Name; got != "Carol" {
		t.Fatalf("penalty last week: got %s, want offender Carol", got)
	}
}

func TestPenaltyStatus(t *testing.T) {
	t.Parallel()

	s, _ := NewState(roster3(), 0, nil)
	if status, weeks := s.PenaltyStatus(); status != models.PenaltyNone || weeks != 0 {
		t.Fatalf("no penalty: got %s/%d", status, weeks)
	}

	// Active: offender holds the pointer; display count includes the week in
	// progress.
	s, _ = NewState(roster3(), 1, &Penalty{OffenderIndex: 1, WeeksRemaining: 0})
	if status, weeks := s.PenaltyStatus(); status != models.PenaltyActive || weeks != 1 {
		t.Fatalf("final week active: got %s/%d, want active/1", status, weeks)
	}

	// Pending: queued record whose offender is not the pointer holder; raw
	// stored count.
	s, _ = NewState(roster3(), 1, &Penalty{OffenderIndex: 2, WeeksRemaining: 2})
	if status, weeks := s.PenaltyStatus(); status != models.PenaltyPending || weeks != 2 {
		t.Fatalf("pending: got %s/%d, want pending/2", status, weeks)
	}

	// Stale records read as no penalty at all.
	s, _ = NewState(roster3(), 1, &Penalty{OffenderIndex: 7, WeeksRemaining: 2})
	if status, _ := s.PenaltyStatus(); status != models.PenaltyNone {
		t.Fatalf("stale: got %s, want none", status)
	}
}
