package domain

import "time"

// SavedSchedule is a solve result persisted under a caller-supplied name,
// retrievable later for export or comparison (spec.md §6 + supplemented
// saved-schedule surface).
type SavedSchedule struct {
	ID        string      `json:"id" db:"id"`
	Name      string      `json:"name" db:"name"`
	Result    SolveResult `json:"result" db:"-"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time   `json:"updatedAt" db:"updated_at"`
}
