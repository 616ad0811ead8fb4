package rotation

import (
	"fmt"
	"time"

	"github.com/danieljbk/regent-house-trash-duty-notif-bot/pkg/models"
)

// Notification is one personalized message destined for one member.
type Notification struct {
	Member models.Member
	Body   string
}

// TickMessages composes one personalized message per roster member for the
// state as it stands after a tick. The offender (if penalized) is told which
// penalty week they are in; everyone else is told how far off their next turn
// is, counting any still-serving penalty weeks ahead of their slot.
func TickMessages(s State, now time.Time) []Notification {
	n := len(s.Roster)
	out := make([]Notification, 0, n)
	for i, m := range s.Roster {
		if s.Penalty != nil && i == s.Penalty.OffenderIndex {
			week := PenaltyLength - s.Penalty.WeeksRemaining
			out = append(out, Notification{
				Member: m,
				Body:   fmt.Sprintf("Trash duty: you are on duty this week (penalty week %d of %d).", week, PenaltyLength),
			})
			continue
		}
		var w int
		if s.Penalty != nil {
			w = mod(i-s.Pointer, n) + s.Penalty.WeeksRemaining + 1
		} else {
			w = mod(i-s.Pointer, n)
		}
		if w == 0 {
			out = append(out, Notification{Member: m, Body: "Trash duty: you are on duty this week."})
			continue
		}
		date := now.AddDate(0, 0, 7*w).Format("Mon Jan 2")
		out = append(out, Notification{
			Member: m,
			Body:   fmt.Sprintf("Trash duty: your next turn is in %d %s (%s).", w, weeksWord(w), date),
		})
	}
	return out
}

// ReportBroadcast composes the team-wide announcement sent immediately when a
// missed-duty report lands, independent of the weekly tick cycle.
func ReportBroadcast(s State, offender models.Member) []Notification {
	body := fmt.Sprintf("%s missed trash duty and takes the next %d weeks of duty, starting now.", offender.Name, PenaltyLength)
	out := make([]Notification, 0, len(s.Roster))
	for _, m := range s.Roster {
		out = append(out, Notification{Member: m, Body: body})
	}
	return out
}

// ReportMessage is the HTTP/CLI response line for a report.
func ReportMessage(outcome ReportOutcome) string {
	if !outcome.Applied {
		return fmt.Sprintf("%s is already serving a trash duty penalty; report ignored.", outcome.Offender.Name)
	}
	return fmt.Sprintf("Recorded missed duty: %s takes trash duty for the next %d weeks.", outcome.Offender.Name, PenaltyLength)
}

func weeksWord(n int) string {
	if n == 1 {
		return "week"
	}
	return "weeks"
}
