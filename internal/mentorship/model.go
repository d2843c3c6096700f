package mentorship

import (
	"time"

	"github.com/alumni-portal/backend/internal/alumni"
	"github.com/alumni-portal/backend/internal/auth"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusAccepted Status = "Accepted"
	StatusRejected Status = "Rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// ============================
// 🔷 GORM Models
type Request struct {
	ID            uint                 `gorm:"primaryKey" json:"id"`
	Name          string               `gorm:"column:request_name;type:varchar(255);not null" json:"request_name"`
	StudentID     uint                 `gorm:"not null;index" json:"student_id"`
	Student       *auth.StudentProfile `gorm:"foreignKey:StudentID;references:UserID;constraint:OnDelete:CASCADE" json:"-"`
	AlumniID      uint                 `gorm:"not null;index" json:"alumni_id"`
	Alumni        *alumni.Profile      `gorm:"foreignKey:AlumniID;references:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	Description   *string              `gorm:"column:request_desc;type:text" json:"request_desc"`
	RequestedAt   time.Time            `gorm:"not null;autoCreateTime" json:"requested_at"`
	Status        Status               `gorm:"column:req_status;type:varchar(16);not null;default:'Pending'" json:"req_status"`
	ActionTakenBy *uint                `json:"action_taken_by"`
	ActionAdmin   *auth.AdminProfile   `gorm:"foreignKey:ActionTakenBy;references:UserID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Request) TableName() string {
	return "mentorship_requests"
}

type Mentorship struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	RequestID uint            `gorm:"not null;uniqueIndex" json:"request_id"`
	Request   *Request        `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE" json:"-"`
	MentorID  uint            `gorm:"not null;index" json:"mentor_id"`
	Mentor    *alumni.Profile `gorm:"foreignKey:MentorID;references:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	Feedback  *string         `gorm:"type:text" json:"feedback"`
}

// ============================
// 🟡 Requests
type CreateRequest struct {
	Name        string  `json:"request_name" binding:"required,max=255"`
	StudentID   uint    `json:"student_id" binding:"required"`
	AlumniID    uint    `json:"alumni_id" binding:"required"`
	Description *string `json:"request_desc,omitempty"`
}

// DecisionRequest settles a pending request.
type DecisionRequest struct {
	Status   Status  `json:"status" binding:"required,enum"`
	AdminID  *uint   `json:"admin_id,omitempty"`
	Feedback *string `json:"feedback,omitempty"`
}

// Decision is the outcome of a decision: the updated request and, when it
// was accepted, the mentorship that was opened.
type Decision struct {
	Request    Request     `json:"request"`
	Mentorship *Mentorship `json:"mentorship,omitempty"`
}
