package event

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/alumni-portal/backend/internal/apperr"
	"github.com/alumni-portal/backend/internal/auditlog"
	"github.com/alumni-portal/backend/internal/metrics"
	"github.com/alumni-portal/backend/internal/notification"
)

// Service wraps business logic for events, organizers and participation.
type Service struct {
	Repo     Repository
	AuditSvc auditlog.Service
	Notifier notification.Publisher

	// Location is applied to submitted timestamps that carry no offset.
	Location *time.Location
	// Now is the clock used for status derivation.
	Now func() time.Time
}

func NewService(r Repository, auditSvc auditlog.Service, notifier notification.Publisher, loc *time.Location) *Service {
	if notifier == nil {
		notifier = notification.NopPublisher{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		Repo:     r,
		AuditSvc: auditSvc,
		Notifier: notifier,
		Location: loc,
		Now:      time.Now,
	}
}

func (s *Service) audit(ctx context.Context, resource string, id *uint, action string, details map[string]interface{}, err error) {
	if s.AuditSvc == nil {
		return
	}
	status := auditlog.StatusSuccess
	if err != nil {
		status = auditlog.StatusFailure
		details["error"] = err.Error()
	}
	_ = s.AuditSvc.LogAction(ctx, nil, resource, id, action, details, status)
}

func (s *Service) notify(ctx context.Context, kind notification.Kind, e *Event) {
	n := notification.Notice{Kind: kind, EventID: e.ID, EventName: e.Name, OccurredAt: s.Now().UTC()}
	if kind != notification.EventDeleted {
		start := e.StartTime
		n.StartTime = &start
		n.EndTime = e.EndTime
	}
	if err := s.Notifier.Publish(ctx, n); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Uint("event_id", e.ID).Msg("event notification not delivered")
	}
}

// ===========================
// 📄 List Events, status-annotated and ordered ongoing, upcoming, completed
func (s *Service) ListEvents(ctx context.Context) ([]EventResponse, error) {
	rows, err := s.Repo.ListWithOrganizer(ctx)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	out := make([]EventResponse, 0, len(rows))
	counts := map[Status]int{}
	for _, row := range rows {
		resp := annotate(row, now)
		counts[resp.Status]++
		out = append(out, resp)
	}
	SortByStatus(out)

	for _, st := range []Status{StatusOngoing, StatusUpcoming, StatusCompleted} {
		metrics.EventListingStatus.WithLabelValues(string(st)).Set(float64(counts[st]))
	}
	return out, nil
}

// Count returns the number of stored events.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.Repo.Count(ctx)
}

// ===========================
// 🔍 Get Event
func (s *Service) GetEvent(ctx context.Context, id uint) (*EventResponse, error) {
	row, err := s.Repo.GetWithOrganizer(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("event", id)
	}
	if err != nil {
		return nil, err
	}
	resp := annotate(*row, s.Now())
	return &resp, nil
}

func (s *Service) requireOrganizer(ctx context.Context, id uint) error {
	_, err := s.Repo.GetOrganizer(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return apperr.Validation("event_org_id %d does not reference an existing organizer", id)
	}
	return err
}

func checkWindow(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return apperr.Validation("end_time must not be before start_time")
	}
	return nil
}

// ===========================
// 🎯 Create Event
func (s *Service) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	start, err := parseTimestamp("start_time", req.StartTime, s.Location)
	if err != nil {
		return nil, err
	}
	var end *time.Time
	if req.EndTime != nil {
		t, err := parseTimestamp("end_time", *req.EndTime, s.Location)
		if err != nil {
			return nil, err
		}
		end = &t
	}
	if err := checkWindow(start, end); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.Validation("event_name must not be blank")
	}
	if err := s.requireOrganizer(ctx, req.OrganizerID); err != nil {
		return nil, err
	}

	e := &Event{
		Name:        req.Name,
		Type:        req.Type,
		StartTime:   start,
		EndTime:     end,
		Description: req.Description,
		OrganizerID: req.OrganizerID,
	}
	if req.ReqDonation != nil {
		e.ReqDonation = *req.ReqDonation
	}

	err = s.Repo.Create(ctx, e)
	s.audit(ctx, "event", &e.ID, "EVENT_CREATED", map[string]interface{}{
		"event_name": req.Name,
		"event_type": req.Type,
	}, err)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.notify(ctx, notification.EventCreated, e)
	return e, nil
}

// ===========================
// 🔄 Update Event, applying only the keys present in the request
func (s *Service) UpdateEvent(ctx context.Context, id uint, req UpdateEventRequest) (*Event, error) {
	existing, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("event", id)
	}
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	merged := *existing

	if req.Name.Set {
		if !req.Name.Present() || strings.TrimSpace(req.Name.Value) == "" {
			return nil, apperr.Validation("event_name must not be blank")
		}
		changes["event_name"] = req.Name.Value
	}
	if req.Type.Set {
		if !req.Type.Present() || !req.Type.Value.IsValid() {
			return nil, apperr.Validation("event_type %q is not a valid event type", req.Type.Value)
		}
		changes["event_type"] = req.Type.Value
	}
	if req.StartTime.Set {
		if !req.StartTime.Present() {
			return nil, apperr.Validation("start_time is required")
		}
		t, err := parseTimestamp("start_time", req.StartTime.Value, s.Location)
		if err != nil {
			return nil, err
		}
		merged.StartTime = t
		changes["start_time"] = t
	}
	if req.EndTime.Set {
		merged.EndTime = nil
		if req.EndTime.Present() {
			t, err := parseTimestamp("end_time", req.EndTime.Value, s.Location)
			if err != nil {
				return nil, err
			}
			merged.EndTime = &t
		}
		changes["end_time"] = merged.EndTime
	}
	if req.Description.Set {
		changes["description"] = req.Description.Ptr()
	}
	if req.OrganizerID.Set {
		if !req.OrganizerID.Present() {
			return nil, apperr.Validation("event_org_id is required")
		}
		if err := s.requireOrganizer(ctx, req.OrganizerID.Value); err != nil {
			return nil, err
		}
		changes["event_org_id"] = req.OrganizerID.Value
	}
	if req.ReqDonation.Set {
		if !req.ReqDonation.Present() || req.ReqDonation.Value < 0 {
			return nil, apperr.Validation("req_donation must be a non-negative integer")
		}
		changes["req_donation"] = req.ReqDonation.Value
	}
	if err := checkWindow(merged.StartTime, merged.EndTime); err != nil {
		return nil, err
	}

	err = s.Repo.Update(ctx, id, changes)
	s.audit(ctx, "event", &id, "EVENT_UPDATED", map[string]interface{}{"fields": changedKeys(changes)}, err)
	if err != nil {
		return nil, fmt.Errorf("update event %d: %w", id, err)
	}

	updated, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload event %d: %w", id, err)
	}
	if len(changes) > 0 {
		s.notify(ctx, notification.EventUpdated, updated)
	}
	return updated, nil
}

func changedKeys(changes map[string]interface{}) []string {
	keys := make([]string, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	return keys
}

// ===========================
// 🗑️ Delete Event
func (s *Service) DeleteEvent(ctx context.Context, id uint) error {
	deleted, err := s.Repo.Delete(ctx, id)
	if err == nil && !deleted {
		err = apperr.NotFound("event", id)
	}
	s.audit(ctx, "event", &id, "EVENT_DELETED", map[string]interface{}{}, err)
	if err != nil {
		return err
	}
	s.notify(ctx, notification.EventDeleted, &Event{ID: id})
	return nil
}

// ===========================
// 🏷️ Organizers
func (s *Service) ListOrganizers(ctx context.Context) ([]EventOrganizer, error) {
	orgs, err := s.Repo.ListOrganizers(ctx)
	if err != nil {
		return nil, err
	}
	if orgs == nil {
		orgs = []EventOrganizer{}
	}
	return orgs, nil
}

func (s *Service) GetOrganizer(ctx context.Context, id uint) (*EventOrganizer, error) {
	o, err := s.Repo.GetOrganizer(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("organizer", id)
	}
	return o, err
}

func (s *Service) CreateOrganizer(ctx context.Context, req CreateOrganizerRequest) (*EventOrganizer, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.Validation("event_org_name must not be blank")
	}
	o := &EventOrganizer{Type: req.Type, Name: req.Name, Description: req.Description}
	err := s.Repo.CreateOrganizer(ctx, o)
	s.audit(ctx, "organizer", &o.ID, "ORGANIZER_CREATED", map[string]interface{}{"event_org_name": req.Name}, err)
	if err != nil {
		return nil, fmt.Errorf("create organizer: %w", err)
	}
	return o, nil
}

func (s *Service) UpdateOrganizer(ctx context.Context, id uint, req UpdateOrganizerRequest) (*EventOrganizer, error) {
	if _, err := s.GetOrganizer(ctx, id); err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if req.Type.Set {
		if !req.Type.Present() || !req.Type.Value.IsValid() {
			return nil, apperr.Validation("event_org_type %q is not a valid organizer type", req.Type.Value)
		}
		changes["event_org_type"] = req.Type.Value
	}
	if req.Name.Set {
		if !req.Name.Present() || strings.TrimSpace(req.Name.Value) == "" {
			return nil, apperr.Validation("event_org_name must not be blank")
		}
		changes["event_org_name"] = req.Name.Value
	}
	if req.Description.Set {
		changes["description"] = req.Description.Ptr()
	}

	err := s.Repo.UpdateOrganizer(ctx, id, changes)
	s.audit(ctx, "organizer", &id, "ORGANIZER_UPDATED", map[string]interface{}{"fields": changedKeys(changes)}, err)
	if err != nil {
		return nil, fmt.Errorf("update organizer %d: %w", id, err)
	}
	return s.GetOrganizer(ctx, id)
}

// DeleteOrganizer refuses to remove an organizer that still hosts events.
func (s *Service) DeleteOrganizer(ctx context.Context, id uint) error {
	n, err := s.Repo.CountEventsByOrganizer(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Conflict("organizer %d still hosts %d event(s)", id, n)
	}

	deleted, err := s.Repo.DeleteOrganizer(ctx, id)
	if err == nil && !deleted {
		err = apperr.NotFound("organizer", id)
	}
	s.audit(ctx, "organizer", &id, "ORGANIZER_DELETED", map[string]interface{}{}, err)
	return err
}

// ===========================
// 👥 Participants
func (s *Service) requireEvent(ctx context.Context, id uint) error {
	_, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound("event", id)
	}
	return err
}

func (s *Service) ListParticipants(ctx context.Context, eventID uint) ([]Participation, error) {
	if err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}
	ps, err := s.Repo.ListParticipants(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ps == nil {
		ps = []Participation{}
	}
	return ps, nil
}

func (s *Service) AddParticipant(ctx context.Context, eventID uint, req AddParticipantRequest) (*Participation, error) {
	if err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}

	p := &Participation{EventID: eventID, AlumniID: req.AlumniID, Role: RoleParticipant, Feedback: req.Feedback}
	if req.Role != nil {
		p.Role = *req.Role
	}

	err := s.Repo.AddParticipant(ctx, p)
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		err = apperr.Conflict("alumnus %d already participates in event %d", req.AlumniID, eventID)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		err = apperr.Validation("alumni_id %d does not reference an existing alumnus", req.AlumniID)
	}
	s.audit(ctx, "event", &eventID, "PARTICIPANT_ADDED", map[string]interface{}{"alumni_id": req.AlumniID, "role": p.Role}, err)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) RemoveParticipant(ctx context.Context, eventID, alumniID uint) error {
	removed, err := s.Repo.RemoveParticipant(ctx, eventID, alumniID)
	if err == nil && !removed {
		err = &apperr.Error{
			Kind:     apperr.KindNotFound,
			Message:  fmt.Sprintf("alumnus %d is not a participant of event %d", alumniID, eventID),
			Resource: "participation",
			ID:       alumniID,
		}
	}
	s.audit(ctx, "event", &eventID, "PARTICIPANT_REMOVED", map[string]interface{}{"alumni_id": alumniID}, err)
	return err
}
