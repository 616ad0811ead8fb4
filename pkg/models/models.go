// Package models provides shared types for the trashduty HTTP API and external tools.
// These types mirror the API JSON and are stable for use by pkg/client and the dashboard.
package models

// Member is one housemate in the rotation roster. Order in the roster is the
// rotation order.
type Member struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// PenaltyInfo describes the penalty banner for the dashboard.
type PenaltyInfo struct {
	Status         string `json:"status"` // none, pending, active
	Offender       string `json:"offender,omitempty"`
	WeeksRemaining int    `json:"weeks_remaining,omitempty"`
}

// Schedule is the GET /schedule response.
type Schedule struct {
	OnDuty      Member      `json:"onDuty"`
	LastWeek    Member      `json:"lastWeek"`
	Team        []Member    `json:"team"`
	Pointer     int         `json:"pointer"`
	Upcoming    []Member    `json:"upcoming,omitempty"`
	PenaltyInfo PenaltyInfo `json:"penaltyInfo"`
}

// Report is the POST /report response.
type Report struct {
	Message string `json:"message"`
}
