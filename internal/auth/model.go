package auth

import (
	"strings"
	"time"

	"github.com/alumni-portal/backend/internal/directory"
	"github.com/alumni-portal/backend/internal/patch"
)

type UserRole string

const (
	RoleStudent UserRole = "Student"
	RoleAlumni  UserRole = "Alumni"
	RoleAdmin   UserRole = "Admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleStudent, RoleAlumni, RoleAdmin:
		return true
	}
	return false
}

// ParseRole matches a role name case-insensitively and returns its canonical form.
func ParseRole(s string) (UserRole, bool) {
	for _, r := range []UserRole{RoleStudent, RoleAlumni, RoleAdmin} {
		if strings.EqualFold(strings.TrimSpace(s), string(r)) {
			return r, true
		}
	}
	return "", false
}

// ============================
// 🔷 GORM Models
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(150);not null;uniqueIndex" json:"username"`
	Email        *string   `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(16);not null;index" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type StudentProfile struct {
	UserID       uint                  `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	User         User                  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	StudentName  string                `gorm:"type:varchar(255);not null" json:"student_name"`
	DepartmentID uint                  `gorm:"not null;index" json:"department_id"`
	Department   *directory.Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:RESTRICT" json:"-"`
	PhNo         *string               `gorm:"type:varchar(32)" json:"ph_no"`
	JoinedYear   *int                  `json:"joined_year"`
	Bio          *string               `gorm:"type:text" json:"bio"`
}

type AdminProfile struct {
	UserID          uint       `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	User            User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	AdminName       string     `gorm:"type:varchar(255);not null" json:"admin_name"`
	PersonalDetails *string    `gorm:"type:text" json:"personal_details"`
	StartedOn       *time.Time `gorm:"type:date" json:"started_on"`
	EndedOn         *time.Time `gorm:"type:date" json:"ended_on"`
}

// ============================
// 🟡 Requests
type SignupRequest struct {
	Username string  `json:"username" binding:"required,max=150"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Password string  `json:"password"`
	// Older clients send the plaintext password under this key.
	LegacyPassword string `json:"hashed_password"`
	Role           string `json:"role" binding:"required"`
}

func (r SignupRequest) password() string {
	if r.Password != "" {
		return r.Password
	}
	return r.LegacyPassword
}

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Username   string `json:"username"`
	Password   string `json:"password" binding:"required"`
	Role       string `json:"role" binding:"required"`
}

func (r LoginRequest) identifier() string {
	if r.Identifier != "" {
		return r.Identifier
	}
	return r.Username
}

type LoginResponse struct {
	Message string   `json:"message"`
	Role    UserRole `json:"role"`
}

type UpdateUserRequest struct {
	Username patch.Field[string] `json:"username"`
	Email    patch.Field[string] `json:"email"`
	Password patch.Field[string] `json:"password"`
	Role     patch.Field[string] `json:"role"`
}
