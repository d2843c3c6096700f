package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T { return &v }

func TestDeriveStatus_Scenarios(t *testing.T) {
	start := at("2024-04-13T18:00")
	end := at("2024-04-13T22:00")

	tests := []struct {
		name string
		now  time.Time
		want Status
	}{
		{"before start", at("2024-04-01T00:00"), StatusUpcoming},
		{"during", at("2024-04-13T20:00"), StatusOngoing},
		{"exactly at start", start, StatusOngoing},
		{"exactly at end", end, StatusOngoing},
		{"after end", at("2024-05-01T00:00"), StatusCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(start, &end, tt.now))
		})
	}
}

func TestDeriveStatus_NoEndNeverCompletes(t *testing.T) {
	start := at("2024-04-13T18:00")
	assert.Equal(t, StatusUpcoming, DeriveStatus(start, nil, at("2024-04-13T17:59")))
	assert.Equal(t, StatusOngoing, DeriveStatus(start, nil, at("2024-04-13T18:00")))
	assert.Equal(t, StatusOngoing, DeriveStatus(start, nil, at("2099-01-01T00:00")))
}

func TestDeriveStatus_MonotonicInNow(t *testing.T) {
	start := at("2024-08-20T19:00")
	end := at("2024-08-20T23:00")

	prev := -1
	for now := at("2024-08-20T17:00"); now.Before(at("2024-08-21T02:00")); now = now.Add(15 * time.Minute) {
		phase := map[Status]int{StatusUpcoming: 0, StatusOngoing: 1, StatusCompleted: 2}[DeriveStatus(start, &end, now)]
		assert.GreaterOrEqual(t, phase, prev, "status went backwards at %s", now)
		prev = phase
	}
	assert.Equal(t, 2, prev)
}

func TestStatusRank(t *testing.T) {
	assert.Equal(t, 0, StatusOngoing.Rank())
	assert.Equal(t, 1, StatusUpcoming.Rank())
	assert.Equal(t, 2, StatusCompleted.Rank())
}

func TestSortByStatus_StableWithinRank(t *testing.T) {
	events := []EventResponse{
		{ID: 1, Status: StatusCompleted},
		{ID: 2, Status: StatusUpcoming},
		{ID: 3, Status: StatusOngoing},
		{ID: 4, Status: StatusCompleted},
		{ID: 5, Status: StatusOngoing},
		{ID: 6, Status: StatusUpcoming},
	}
	SortByStatus(events)

	ids := make([]uint, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	assert.Equal(t, []uint{3, 5, 2, 6, 1, 4}, ids)
}

func TestSortByStatus_Empty(t *testing.T) {
	var events []EventResponse
	SortByStatus(events)
	assert.Empty(t, events)
}

func TestAnnotate_MapsColumns(t *testing.T) {
	end := at("2024-04-13T22:00")
	row := EventWithOrganizer{
		Event: Event{
			ID:          9,
			Name:        "Baisakhi Celebration",
			StartTime:   at("2024-04-13T18:00"),
			EndTime:     &end,
			Description: ptr("Harvest festival"),
		},
		OrganizerName: "Punjabi Cultural Club",
	}

	got := annotate(row, at("2024-04-13T20:00"))
	assert.Equal(t, uint(9), got.ID)
	assert.Equal(t, "Baisakhi Celebration", got.Title)
	assert.Equal(t, "Harvest festival", *got.Description)
	assert.Equal(t, "Punjabi Cultural Club", got.OrganizerName)
	assert.Equal(t, StatusOngoing, got.Status)
}

func TestParseTimestamp(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*3600+1800)

	got, err := parseTimestamp("start_time", "2024-04-13T18:00:00", kolkata)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 4, 13, 18, 0, 0, 0, kolkata).Unix(), got.Unix())

	got, err = parseTimestamp("start_time", "2024-04-13T18:00:00Z", kolkata)
	assert.NoError(t, err)
	assert.Equal(t, time.UTC, got.Location())

	_, err = parseTimestamp("start_time", "2024-04-13 18:00", kolkata)
	assert.NoError(t, err)

	_, err = parseTimestamp("start_time", "13/04/2024", kolkata)
	assert.Error(t, err)
}
