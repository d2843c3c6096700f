package alumni

import (
	"time"

	"github.com/alumni-portal/backend/internal/auth"
	"github.com/alumni-portal/backend/internal/directory"
	"github.com/alumni-portal/backend/internal/event"
	"github.com/alumni-portal/backend/internal/patch"
)

// ============================
// 🔷 GORM Models
type Profile struct {
	UserID             uint                  `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	User               auth.User             `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	AlumniName         string                `gorm:"type:varchar(255);not null" json:"alumni_name"`
	PhNo               *string               `gorm:"type:varchar(32)" json:"ph_no"`
	GraduationYear     int                   `gorm:"not null;index" json:"graduation_year"`
	DepartmentID       uint                  `gorm:"not null;index" json:"department_id"`
	Department         *directory.Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:RESTRICT" json:"-"`
	Bio                *string               `gorm:"type:text" json:"bio"`
	LinkedinProfileURL *string               `gorm:"column:linkedin_profile_url;type:varchar(512)" json:"linkedin_profile_url"`

	Careers        []Career              `gorm:"foreignKey:AlumniID;references:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	Participations []event.Participation `gorm:"foreignKey:AlumniID;references:UserID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Profile) TableName() string {
	return "alumni_profiles"
}

type Career struct {
	ID             uint                    `gorm:"primaryKey" json:"id"`
	AlumniID       uint                    `gorm:"not null;index" json:"alumni_id"`
	OrganizationID uint                    `gorm:"not null;index" json:"organization_id"`
	Organization   *directory.Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:RESTRICT" json:"-"`
	Role           string                  `gorm:"type:varchar(255);not null" json:"role"`
	Location       *string                 `gorm:"type:varchar(255)" json:"location"`
	StartedOn      time.Time               `gorm:"type:date;not null" json:"started_on"`
	WorkedTill     *time.Time              `gorm:"type:date" json:"worked_till"` // NULL means current job
	Description    *string                 `gorm:"type:text" json:"description"`
}

// DirectoryEntry is a profile joined with its user and department, the shape
// used by listings and exports.
type DirectoryEntry struct {
	UserID             uint    `json:"user_id"`
	AlumniName         string  `json:"alumni_name"`
	Email              *string `json:"email"`
	PhNo               *string `json:"ph_no"`
	GraduationYear     int     `json:"graduation_year"`
	DepartmentID       uint    `json:"department_id"`
	DepartmentName     string  `json:"department_name"`
	Bio                *string `json:"bio"`
	LinkedinProfileURL *string `json:"linkedin_profile_url"`
}

// ============================
// 🟡 Requests
type CreateProfileRequest struct {
	UserID             uint    `json:"user_id" binding:"required"`
	AlumniName         string  `json:"alumni_name" binding:"required,max=255"`
	PhNo               *string `json:"ph_no,omitempty" binding:"omitempty,max=32"`
	GraduationYear     int     `json:"graduation_year" binding:"required,min=1900,max=2100"`
	DepartmentID       uint    `json:"department_id" binding:"required"`
	Bio                *string `json:"bio,omitempty"`
	LinkedinProfileURL *string `json:"linkedin_profile_url,omitempty" binding:"omitempty,url"`
}

type UpdateProfileRequest struct {
	AlumniName         patch.Field[string] `json:"alumni_name"`
	PhNo               patch.Field[string] `json:"ph_no"`
	GraduationYear     patch.Field[int]    `json:"graduation_year"`
	DepartmentID       patch.Field[uint]   `json:"department_id"`
	Bio                patch.Field[string] `json:"bio"`
	LinkedinProfileURL patch.Field[string] `json:"linkedin_profile_url"`
}

type CreateCareerRequest struct {
	OrganizationID uint    `json:"organization_id" binding:"required"`
	Role           string  `json:"role" binding:"required,max=255"`
	Location       *string `json:"location,omitempty"`
	StartedOn      string  `json:"started_on" binding:"required,datetime=2006-01-02"`
	WorkedTill     *string `json:"worked_till,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Description    *string `json:"description,omitempty"`
}
