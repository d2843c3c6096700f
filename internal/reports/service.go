package reports

import (
	"context"
	"strconv"
	"time"

	"github.com/alumni-portal/backend/internal/alumni"
	"github.com/alumni-portal/backend/internal/apperr"
	"github.com/alumni-portal/backend/internal/event"
)

type AlumniSource interface {
	List(ctx context.Context) ([]alumni.DirectoryEntry, error)
}

type EventSource interface {
	ListEvents(ctx context.Context) ([]event.EventResponse, error)
}

type Service struct {
	Alumni   AlumniSource
	Events   EventSource
	Exporter Exporter
	Location *time.Location
	Now      func() time.Time
}

func NewService(alumni AlumniSource, events EventSource, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{Alumni: alumni, Events: events, Exporter: NewExporter(), Location: loc, Now: time.Now}
}

func (s *Service) export(format string, t Table) (*File, error) {
	canonical, ok := NormalizeFormat(format)
	if !ok {
		return nil, apperr.Validation("format %q is not supported; use csv, xlsx or pdf", format)
	}
	return s.Exporter.Export(canonical, t, s.Now().In(s.Location).Format("20060102_150405"))
}

// AlumniDirectory exports the joined alumni directory.
func (s *Service) AlumniDirectory(ctx context.Context, format string) (*File, error) {
	entries, err := s.Alumni.List(ctx)
	if err != nil {
		return nil, err
	}
	t := Table{
		Name:    "alumni_directory",
		Title:   "Alumni Directory",
		Headers: []string{"User ID", "Name", "Email", "Phone", "Graduation Year", "Department", "LinkedIn"},
		Widths:  []float64{18, 50, 60, 30, 28, 40, 50},
		Rows:    make([][]string, 0, len(entries)),
	}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{
			strconv.FormatUint(uint64(e.UserID), 10),
			e.AlumniName,
			deref(e.Email),
			deref(e.PhNo),
			strconv.Itoa(e.GraduationYear),
			e.DepartmentName,
			deref(e.LinkedinProfileURL),
		})
	}
	return s.export(format, t)
}

// EventListing exports the listing in the same status order the API returns.
func (s *Service) EventListing(ctx context.Context, format string) (*File, error) {
	events, err := s.Events.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	t := Table{
		Name:    "events",
		Title:   "Events",
		Headers: []string{"ID", "Title", "Status", "Organizer", "Start", "End"},
		Widths:  []float64{15, 80, 28, 60, 36, 36},
		Rows:    make([][]string, 0, len(events)),
	}
	for _, e := range events {
		end := ""
		if e.EndTime != nil {
			end = e.EndTime.In(s.Location).Format("2006-01-02 15:04")
		}
		t.Rows = append(t.Rows, []string{
			strconv.FormatUint(uint64(e.ID), 10),
			e.Title,
			string(e.Status),
			e.OrganizerName,
			e.StartTime.In(s.Location).Format("2006-01-02 15:04"),
			end,
		})
	}
	return s.export(format, t)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
