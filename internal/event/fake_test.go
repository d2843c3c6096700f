package event

import (
	"context"
	"slices"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/alumni-portal/backend/internal/auditlog"
	"github.com/alumni-portal/backend/internal/notification"
)

// memRepo is an in-memory Repository for service and handler tests.
type memRepo struct {
	mu           sync.Mutex
	nextID       uint
	events       map[uint]Event
	organizers   map[uint]EventOrganizer
	participants []Participation
	failWith     error
}

func newMemRepo() *memRepo {
	return &memRepo{
		events:     map[uint]Event{},
		organizers: map[uint]EventOrganizer{},
	}
}

func (m *memRepo) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memRepo) sortedEventIDs() []uint {
	ids := make([]uint, 0, len(m.events))
	for id := range m.events {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (m *memRepo) ListWithOrganizer(context.Context) ([]EventWithOrganizer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []EventWithOrganizer
	for _, id := range m.sortedEventIDs() {
		e := m.events[id]
		out = append(out, EventWithOrganizer{Event: e, OrganizerName: m.organizers[e.OrganizerID].Name})
	}
	return out, nil
}

func (m *memRepo) GetWithOrganizer(_ context.Context, id uint) (*EventWithOrganizer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &EventWithOrganizer{Event: e, OrganizerName: m.organizers[e.OrganizerID].Name}, nil
}

func (m *memRepo) GetByID(_ context.Context, id uint) (*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (m *memRepo) Create(_ context.Context, e *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	e.ID = m.id()
	m.events[e.ID] = *e
	return nil
}

func (m *memRepo) Update(_ context.Context, id uint, changes map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.events[id]
	for k, v := range changes {
		switch k {
		case "event_name":
			e.Name = v.(string)
		case "event_type":
			e.Type = v.(EventType)
		case "start_time":
			e.StartTime = v.(time.Time)
		case "end_time":
			e.EndTime = v.(*time.Time)
		case "description":
			e.Description = v.(*string)
		case "event_org_id":
			e.OrganizerID = v.(uint)
		case "req_donation":
			e.ReqDonation = v.(int)
		}
	}
	m.events[id] = e
	return nil
}

func (m *memRepo) Delete(_ context.Context, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; !ok {
		return false, nil
	}
	delete(m.events, id)
	m.participants = slices.DeleteFunc(m.participants, func(p Participation) bool { return p.EventID == id })
	return true, nil
}

func (m *memRepo) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.events)), nil
}

func (m *memRepo) ListOrganizers(context.Context) ([]EventOrganizer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []EventOrganizer
	for _, o := range m.organizers {
		out = append(out, o)
	}
	slices.SortFunc(out, func(a, b EventOrganizer) int { return int(a.ID) - int(b.ID) })
	return out, nil
}

func (m *memRepo) GetOrganizer(_ context.Context, id uint) (*EventOrganizer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.organizers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (m *memRepo) CreateOrganizer(_ context.Context, o *EventOrganizer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.ID = m.id()
	m.organizers[o.ID] = *o
	return nil
}

func (m *memRepo) UpdateOrganizer(_ context.Context, id uint, changes map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o := m.organizers[id]
	for k, v := range changes {
		switch k {
		case "event_org_type":
			o.Type = v.(OrganizerType)
		case "event_org_name":
			o.Name = v.(string)
		case "description":
			o.Description = v.(*string)
		}
	}
	m.organizers[id] = o
	return nil
}

func (m *memRepo) DeleteOrganizer(_ context.Context, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.organizers[id]; !ok {
		return false, nil
	}
	delete(m.organizers, id)
	return true, nil
}

func (m *memRepo) CountEventsByOrganizer(_ context.Context, organizerID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, e := range m.events {
		if e.OrganizerID == organizerID {
			n++
		}
	}
	return n, nil
}

func (m *memRepo) ListParticipants(_ context.Context, eventID uint) ([]Participation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Participation
	for _, p := range m.participants {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memRepo) AddParticipant(_ context.Context, p *Participation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.participants {
		if existing.EventID == p.EventID && existing.AlumniID == p.AlumniID {
			return gorm.ErrDuplicatedKey
		}
	}
	m.participants = append(m.participants, *p)
	return nil
}

func (m *memRepo) RemoveParticipant(_ context.Context, eventID, alumniID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	before := len(m.participants)
	m.participants = slices.DeleteFunc(m.participants, func(p Participation) bool {
		return p.EventID == eventID && p.AlumniID == alumniID
	})
	return len(m.participants) < before, nil
}

// recordingPublisher captures published notices.
type recordingPublisher struct {
	mu      sync.Mutex
	notices []notification.Notice
	err     error
}

func (p *recordingPublisher) Publish(_ context.Context, n notification.Notice) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notices = append(p.notices, n)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) kinds() []notification.Kind {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]notification.Kind, len(p.notices))
	for i, n := range p.notices {
		out[i] = n.Kind
	}
	return out
}

// recordingAudit captures audit actions.
type recordingAudit struct {
	mu      sync.Mutex
	actions []string
}

func (a *recordingAudit) LogAction(_ context.Context, _ *uint, _ string, _ *uint, action string, _ map[string]interface{}, status string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action+":"+status)
	return nil
}

func (a *recordingAudit) GetAuditLogs(context.Context, auditlog.AuditLogFilter) (*auditlog.PaginatedAuditLogs, error) {
	return nil, nil
}

func (a *recordingAudit) GetAuditLogByID(context.Context, uint) (*auditlog.AuditLogResponse, error) {
	return nil, nil
}
