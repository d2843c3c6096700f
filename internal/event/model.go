package event

import (
	"time"

	"github.com/alumni-portal/backend/internal/patch"
)

// ============================
// 🔷 Enumerations
type EventType string

const (
	TypeReunion   EventType = "Reunion"
	TypeWebinar   EventType = "Webinar"
	TypeSeminar   EventType = "Seminar"
	TypeCultural  EventType = "Cultural"
	TypeTechnical EventType = "Technical"
	TypeSports    EventType = "Sports"
	TypeInstitute EventType = "Institute"
)

func (t EventType) IsValid() bool {
	switch t {
	case TypeReunion, TypeWebinar, TypeSeminar, TypeCultural, TypeTechnical, TypeSports, TypeInstitute:
		return true
	}
	return false
}

type OrganizerType string

const (
	OrganizerClub       OrganizerType = "Club"
	OrganizerDepartment OrganizerType = "Department"
	OrganizerInstitute  OrganizerType = "Institute"
	OrganizerHostel     OrganizerType = "Hostel"
)

func (t OrganizerType) IsValid() bool {
	switch t {
	case OrganizerClub, OrganizerDepartment, OrganizerInstitute, OrganizerHostel:
		return true
	}
	return false
}

type ParticipantRole string

const (
	RoleParticipant ParticipantRole = "Participant"
	RoleGuest       ParticipantRole = "Guest"
	RoleSpeaker     ParticipantRole = "Speaker"
	RolePanelist    ParticipantRole = "Panelist"
	RoleOrganizer   ParticipantRole = "Organizer"
)

func (r ParticipantRole) IsValid() bool {
	switch r {
	case RoleParticipant, RoleGuest, RoleSpeaker, RolePanelist, RoleOrganizer:
		return true
	}
	return false
}

// ============================
// 🔷 GORM Models
type Event struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"column:event_name;type:varchar(255);not null" json:"event_name"`
	Type        EventType      `gorm:"column:event_type;type:varchar(32);not null" json:"event_type"`
	StartTime   time.Time      `gorm:"not null;index" json:"start_time"`
	EndTime     *time.Time     `json:"end_time"`
	Description *string        `gorm:"type:text" json:"description"`
	OrganizerID uint           `gorm:"column:event_org_id;not null;index" json:"event_org_id"`
	Organizer   EventOrganizer `gorm:"foreignKey:OrganizerID;constraint:OnDelete:RESTRICT" json:"-"`
	ReqDonation int            `gorm:"default:0" json:"req_donation"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	Participants []Participation `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
}

type EventOrganizer struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Type        OrganizerType `gorm:"column:event_org_type;type:varchar(32);not null" json:"event_org_type"`
	Name        string        `gorm:"column:event_org_name;type:varchar(255);not null" json:"event_org_name"`
	Description *string       `gorm:"type:text" json:"description"`
}

// Participation links an alumnus to an event. The alumni_profiles foreign key
// is owned by the alumni package's schema.
type Participation struct {
	EventID  uint            `gorm:"primaryKey" json:"event_id"`
	AlumniID uint            `gorm:"primaryKey" json:"alumni_id"`
	Role     ParticipantRole `gorm:"type:varchar(32);not null;default:'Participant'" json:"role"`
	Feedback *string         `gorm:"type:text" json:"feedback"`
}

func (Participation) TableName() string {
	return "event_participations"
}

// ============================
// 🟢 Listing shape
type EventResponse struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Description   *string    `json:"description"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	Status        Status     `json:"status"`
	OrganizerName string     `json:"organizer_name"`
}

// EventWithOrganizer is an event joined with its organizer's name.
type EventWithOrganizer struct {
	Event
	OrganizerName string
}

// ============================
// 🟡 Create Event Request
type CreateEventRequest struct {
	Name        string    `json:"event_name" binding:"required,max=255"`
	Type        EventType `json:"event_type" binding:"required,enum"`
	StartTime   string    `json:"start_time" binding:"required"` // 🛠 ISO-8601, offset optional
	EndTime     *string   `json:"end_time,omitempty"`
	Description *string   `json:"description,omitempty"`
	OrganizerID uint      `json:"event_org_id" binding:"required"`
	ReqDonation *int      `json:"req_donation,omitempty" binding:"omitempty,min=0"`
}

// ============================
// 🟠 Update Event Request
type UpdateEventRequest struct {
	Name        patch.Field[string]    `json:"event_name"`
	Type        patch.Field[EventType] `json:"event_type"`
	StartTime   patch.Field[string]    `json:"start_time"`
	EndTime     patch.Field[string]    `json:"end_time"`
	Description patch.Field[string]    `json:"description"`
	OrganizerID patch.Field[uint]      `json:"event_org_id"`
	ReqDonation patch.Field[int]       `json:"req_donation"`
}

type CreateOrganizerRequest struct {
	Type        OrganizerType `json:"event_org_type" binding:"required,enum"`
	Name        string        `json:"event_org_name" binding:"required,max=255"`
	Description *string       `json:"description,omitempty"`
}

type UpdateOrganizerRequest struct {
	Type        patch.Field[OrganizerType] `json:"event_org_type"`
	Name        patch.Field[string]        `json:"event_org_name"`
	Description patch.Field[string]        `json:"description"`
}

type AddParticipantRequest struct {
	AlumniID uint             `json:"alumni_id" binding:"required"`
	Role     *ParticipantRole `json:"role,omitempty" binding:"omitempty,enum"`
	Feedback *string          `json:"feedback,omitempty"`
}
