package alumni

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/alumni-portal/backend/internal/apperr"
	"github.com/alumni-portal/backend/internal/auditlog"
	"github.com/alumni-portal/backend/internal/auth"
)

// UserLookup checks that a profile is attached to a user of the right role.
type UserLookup interface {
	ExistsWithRole(ctx context.Context, id uint, role auth.UserRole) (bool, error)
}

// ReferenceLookup checks department and organization ids.
type ReferenceLookup interface {
	DepartmentExists(ctx context.Context, id uint) (bool, error)
	OrganizationExists(ctx context.Context, id uint) (bool, error)
}

type Service struct {
	Repo     Repository
	Users    UserLookup
	Refs     ReferenceLookup
	AuditSvc auditlog.Service
}

func NewService(r Repository, users UserLookup, refs ReferenceLookup, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, Users: users, Refs: refs, AuditSvc: auditSvc}
}

func (s *Service) audit(ctx context.Context, id *uint, action string, details map[string]interface{}, err error) {
	if s.AuditSvc == nil {
		return
	}
	status := auditlog.StatusSuccess
	if err != nil {
		status = auditlog.StatusFailure
		details["error"] = err.Error()
	}
	_ = s.AuditSvc.LogAction(ctx, nil, "alumni", id, action, details, status)
}

func (s *Service) requireDepartment(ctx context.Context, id uint) error {
	ok, err := s.Refs.DepartmentExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Validation("department_id %d does not reference an existing department", id)
	}
	return nil
}

// ===========================
// 📄 Directory
func (s *Service) List(ctx context.Context) ([]DirectoryEntry, error) {
	out, err := s.Repo.ListDirectory(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []DirectoryEntry{}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*DirectoryEntry, error) {
	e, err := s.Repo.GetDirectoryEntry(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("alumni", id)
	}
	return e, err
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.Repo.Count(ctx)
}

// ===========================
// 🎯 Create Profile
func (s *Service) Create(ctx context.Context, req CreateProfileRequest) (*Profile, error) {
	if strings.TrimSpace(req.AlumniName) == "" {
		return nil, apperr.Validation("alumni_name must not be blank")
	}
	ok, err := s.Users.ExistsWithRole(ctx, req.UserID, auth.RoleAlumni)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Validation("user_id %d does not reference an Alumni user", req.UserID)
	}
	if err := s.requireDepartment(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	p := &Profile{
		UserID:             req.UserID,
		AlumniName:         req.AlumniName,
		PhNo:               req.PhNo,
		GraduationYear:     req.GraduationYear,
		DepartmentID:       req.DepartmentID,
		Bio:                req.Bio,
		LinkedinProfileURL: req.LinkedinProfileURL,
	}
	err = s.Repo.Create(ctx, p)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = apperr.Conflict("user %d already has an alumni profile", req.UserID)
	}
	s.audit(ctx, &req.UserID, "ALUMNI_CREATED", map[string]interface{}{"alumni_name": req.AlumniName}, err)
	if err != nil {
		if apperr.KindOf(err) != apperr.KindInternal {
			return nil, err
		}
		return nil, fmt.Errorf("create alumni profile: %w", err)
	}
	return p, nil
}

// ===========================
// 🔄 Update Profile
func (s *Service) Update(ctx context.Context, id uint, req UpdateProfileRequest) (*Profile, error) {
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("alumni", id)
		}
		return nil, err
	}

	changes := map[string]interface{}{}
	if req.AlumniName.Set {
		if !req.AlumniName.Present() || strings.TrimSpace(req.AlumniName.Value) == "" {
			return nil, apperr.Validation("alumni_name must not be blank")
		}
		changes["alumni_name"] = req.AlumniName.Value
	}
	if req.PhNo.Set {
		changes["ph_no"] = req.PhNo.Ptr()
	}
	if req.GraduationYear.Set {
		if !req.GraduationYear.Present() || req.GraduationYear.Value < 1900 || req.GraduationYear.Value > 2100 {
			return nil, apperr.Validation("graduation_year must be between 1900 and 2100")
		}
		changes["graduation_year"] = req.GraduationYear.Value
	}
	if req.DepartmentID.Set {
		if !req.DepartmentID.Present() {
			return nil, apperr.Validation("department_id is required")
		}
		if err := s.requireDepartment(ctx, req.DepartmentID.Value); err != nil {
			return nil, err
		}
		changes["department_id"] = req.DepartmentID.Value
	}
	if req.Bio.Set {
		changes["bio"] = req.Bio.Ptr()
	}
	if req.LinkedinProfileURL.Set {
		changes["linkedin_profile_url"] = req.LinkedinProfileURL.Ptr()
	}

	err := s.Repo.Update(ctx, id, changes)
	s.audit(ctx, &id, "ALUMNI_UPDATED", map[string]interface{}{"fields": slices.Sorted(maps.Keys(changes))}, err)
	if err != nil {
		return nil, fmt.Errorf("update alumni %d: %w", id, err)
	}
	return s.Repo.GetByID(ctx, id)
}

// ===========================
// 🗑️ Delete Profile, refused while other records reference it
func (s *Service) Delete(ctx context.Context, id uint) error {
	deps, err := s.Repo.CountDependents(ctx, id)
	if err != nil {
		return err
	}
	if len(deps) > 0 {
		tables := slices.Sorted(maps.Keys(deps))
		return apperr.Conflict("alumni %d is still referenced by %s", id, strings.Join(tables, ", "))
	}

	deleted, err := s.Repo.Delete(ctx, id)
	if err == nil && !deleted {
		err = apperr.NotFound("alumni", id)
	}
	s.audit(ctx, &id, "ALUMNI_DELETED", map[string]interface{}{}, err)
	return err
}

// ===========================
// 💼 Careers
func (s *Service) ListCareers(ctx context.Context, alumniID uint) ([]Career, error) {
	if _, err := s.Get(ctx, alumniID); err != nil {
		return nil, err
	}
	out, err := s.Repo.ListCareers(ctx, alumniID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Career{}
	}
	return out, nil
}

func (s *Service) CreateCareer(ctx context.Context, alumniID uint, req CreateCareerRequest) (*Career, error) {
	if _, err := s.Repo.GetByID(ctx, alumniID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("alumni", alumniID)
		}
		return nil, err
	}
	ok, err := s.Refs.OrganizationExists(ctx, req.OrganizationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Validation("organization_id %d does not reference an existing organization", req.OrganizationID)
	}

	started, err := time.Parse(time.DateOnly, req.StartedOn)
	if err != nil {
		return nil, apperr.Validation("started_on must be YYYY-MM-DD")
	}
	var till *time.Time
	if req.WorkedTill != nil {
		t, err := time.Parse(time.DateOnly, *req.WorkedTill)
		if err != nil {
			return nil, apperr.Validation("worked_till must be YYYY-MM-DD")
		}
		if t.Before(started) {
			return nil, apperr.Validation("worked_till must not be before started_on")
		}
		till = &t
	}

	c := &Career{
		AlumniID:       alumniID,
		OrganizationID: req.OrganizationID,
		Role:           req.Role,
		Location:       req.Location,
		StartedOn:      started,
		WorkedTill:     till,
		Description:    req.Description,
	}
	err = s.Repo.CreateCareer(ctx, c)
	s.audit(ctx, &alumniID, "CAREER_CREATED", map[string]interface{}{"role": req.Role, "organization_id": req.OrganizationID}, err)
	if err != nil {
		return nil, fmt.Errorf("create career: %w", err)
	}
	return c, nil
}
