package event

import (
	"slices"
	"time"
)

// Status is the time-relative display state of an event.
type Status string

const (
	StatusUpcoming  Status = "Upcoming"
	StatusOngoing   Status = "Ongoing"
	StatusCompleted Status = "Completed"
)

// DeriveStatus classifies an event against now. An event without an end time
// never completes, and an event ending exactly at now is still ongoing.
func DeriveStatus(start time.Time, end *time.Time, now time.Time) Status {
	if start.After(now) {
		return StatusUpcoming
	}
	if end != nil && end.Before(now) {
		return StatusCompleted
	}
	return StatusOngoing
}

// Rank orders statuses for listings: ongoing first, then upcoming, then completed.
func (s Status) Rank() int {
	switch s {
	case StatusOngoing:
		return 0
	case StatusUpcoming:
		return 1
	default:
		return 2
	}
}

// SortByStatus orders events by status rank, keeping retrieval order among
// events with the same status.
func SortByStatus(events []EventResponse) {
	slices.SortStableFunc(events, func(a, b EventResponse) int {
		return a.Status.Rank() - b.Status.Rank()
	})
}

func annotate(row EventWithOrganizer, now time.Time) EventResponse {
	return EventResponse{
		ID:            row.ID,
		Title:         row.Name,
		Description:   row.Description,
		StartTime:     row.StartTime,
		EndTime:       row.EndTime,
		Status:        DeriveStatus(row.StartTime, row.EndTime, now),
		OrganizerName: row.OrganizerName,
	}
}
