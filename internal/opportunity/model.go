package opportunity

import (
	"time"

	"github.com/alumni-portal/backend/internal/alumni"
	"github.com/alumni-portal/backend/internal/directory"
	"github.com/alumni-portal/backend/internal/patch"
)

type Type string

const (
	TypeJob        Type = "Job"
	TypeInternship Type = "Internship"
	TypeMentorship Type = "Mentorship"
	TypeReferral   Type = "Referral"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeJob, TypeInternship, TypeMentorship, TypeReferral:
		return true
	}
	return false
}

type Opportunity struct {
	ID               uint                    `gorm:"primaryKey" json:"id"`
	PostedByAlumniID uint                    `gorm:"not null;index" json:"posted_by_alumni_id"`
	PostedBy         *alumni.Profile         `gorm:"foreignKey:PostedByAlumniID;references:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	OrganizationID   *uint                   `gorm:"index" json:"organization_id"`
	Organization     *directory.Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:SET NULL" json:"-"`
	Type             Type                    `gorm:"type:varchar(16);not null;index" json:"type"`
	Title            string                  `gorm:"type:varchar(255);not null" json:"title"`
	Description      string                  `gorm:"type:text;not null" json:"description"`
	IsActive         bool                    `gorm:"not null" json:"is_active"` // defaults to true in the service
	TargetAudience   *string                 `gorm:"type:varchar(255)" json:"target_audience"`
	CreatedAt        time.Time               `gorm:"autoCreateTime" json:"created_at"`
}

type CreateRequest struct {
	PostedByAlumniID uint    `json:"posted_by_alumni_id" binding:"required"`
	OrganizationID   *uint   `json:"organization_id,omitempty"`
	Type             Type    `json:"type" binding:"required,enum"`
	Title            string  `json:"title" binding:"required,max=255"`
	Description      string  `json:"description" binding:"required"`
	IsActive         *bool   `json:"is_active,omitempty"`
	TargetAudience   *string `json:"target_audience,omitempty" binding:"omitempty,max=255"`
}

type UpdateRequest struct {
	OrganizationID patch.Field[uint]   `json:"organization_id"`
	Type           patch.Field[Type]   `json:"type"`
	Title          patch.Field[string] `json:"title"`
	Description    patch.Field[string] `json:"description"`
	IsActive       patch.Field[bool]   `json:"is_active"`
	TargetAudience patch.Field[string] `json:"target_audience"`
}

// ListFilter narrows GET /opportunities.
type ListFilter struct {
	Type       Type
	ActiveOnly bool
}
