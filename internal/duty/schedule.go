package duty

import (
	"context"

	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/rotation"
	"github.com/danieljbk/regent-house-trash-duty-notif-bot/pkg/models"
)

// Schedule computes the dashboard projection without mutating state. An
// invalid persisted penalty record reads as no penalty; the query still
// answers with normal-rotation data rather than failing.
func (s *Service) Schedule(ctx context.Context, upcomingWeeks int) (*models.Schedule, error) {
	roster, err := s.Store.Roster(ctx)
	if err != nil {
		return nil, err
	}
	pointer, err := s.Store.Pointer(ctx)
	if err != nil {
		return nil, err
	}
	penalty, err := s.Store.Penalty(ctx)
	if err != nil {
		return nil, err
	}
	st, err := rotation.NewState(roster, pointer, penalty)
	if err != nil {
		return nil, err
	}

	status, weeks := st.PenaltyStatus()
	info := models.PenaltyInfo{Status: status}
	if st.Penalty != nil {
		info.Offender = st.Roster[st.Penalty.OffenderIndex].Name
		info.WeeksRemaining = weeks
	}

	return &models.Schedule{
		OnDuty:      st.OnDuty(),
		LastWeek:    st.LastWeek(),
		Team:        st.Roster,
		Pointer:     st.Pointer,
		Upcoming:    st.Upcoming(upcomingWeeks),
		PenaltyInfo: info,
	}, nil
}
