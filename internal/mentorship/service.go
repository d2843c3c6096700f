package mentorship

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/alumni-portal/backend/internal/apperr"
	"github.com/alumni-portal/backend/internal/auditlog"
	"github.com/alumni-portal/backend/internal/auth"
)

// UserLookup checks the roles of the users a request references.
type UserLookup interface {
	ExistsWithRole(ctx context.Context, id uint, role auth.UserRole) (bool, error)
}

type Service struct {
	Repo     Repository
	Users    UserLookup
	AuditSvc auditlog.Service
}

func NewService(r Repository, users UserLookup, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, Users: users, AuditSvc: auditSvc}
}

func (s *Service) audit(ctx context.Context, actor *uint, id *uint, action string, details map[string]interface{}, err error) {
	if s.AuditSvc == nil {
		return
	}
	status := auditlog.StatusSuccess
	if err != nil {
		status = auditlog.StatusFailure
		details["error"] = err.Error()
	}
	_ = s.AuditSvc.LogAction(ctx, actor, "mentorship_request", id, action, details, status)
}

func (s *Service) requireRole(ctx context.Context, field string, id uint, role auth.UserRole) error {
	ok, err := s.Users.ExistsWithRole(ctx, id, role)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Validation("%s %d does not reference a user with role %s", field, id, role)
	}
	return nil
}

func (s *Service) ListRequests(ctx context.Context, status Status) ([]Request, error) {
	if status != "" && !status.IsValid() {
		return nil, apperr.Validation("status %q is not a valid request status", status)
	}
	out, err := s.Repo.ListRequests(ctx, status)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Request{}
	}
	return out, nil
}

func (s *Service) GetRequest(ctx context.Context, id uint) (*Request, error) {
	req, err := s.Repo.GetRequest(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("mentorship request", id)
	}
	return req, err
}

func (s *Service) CreateRequest(ctx context.Context, in CreateRequest) (*Request, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Validation("request_name must not be blank")
	}
	if err := s.requireRole(ctx, "student_id", in.StudentID, auth.RoleStudent); err != nil {
		return nil, err
	}
	if err := s.requireRole(ctx, "alumni_id", in.AlumniID, auth.RoleAlumni); err != nil {
		return nil, err
	}

	req := &Request{
		Name:        in.Name,
		StudentID:   in.StudentID,
		AlumniID:    in.AlumniID,
		Description: in.Description,
		Status:      StatusPending,
	}
	err := s.Repo.CreateRequest(ctx, req)
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		err = apperr.Validation("student_id and alumni_id must reference existing student and alumni profiles")
	}
	s.audit(ctx, &in.StudentID, &req.ID, "MENTORSHIP_REQUESTED", map[string]interface{}{
		"alumni_id": in.AlumniID,
	}, err)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Decide accepts or rejects a pending request.
func (s *Service) Decide(ctx context.Context, id uint, in DecisionRequest) (*Decision, error) {
	if in.Status != StatusAccepted && in.Status != StatusRejected {
		return nil, apperr.Validation("status must be Accepted or Rejected")
	}
	if in.AdminID != nil {
		if err := s.requireRole(ctx, "admin_id", *in.AdminID, auth.RoleAdmin); err != nil {
			return nil, err
		}
	}

	d, err := s.Repo.Decide(ctx, id, in.Status, in.AdminID, in.Feedback)
	switch {
	case errors.Is(err, ErrNotFound):
		err = apperr.NotFound("mentorship request", id)
	case errors.Is(err, ErrNotPending):
		err = apperr.Conflict("mentorship request %d has already been decided", id)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		err = apperr.Validation("admin_id does not reference an admin profile")
	}
	s.audit(ctx, in.AdminID, &id, "MENTORSHIP_"+strings.ToUpper(string(in.Status)), map[string]interface{}{}, err)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) ListMentorships(ctx context.Context) ([]Mentorship, error) {
	out, err := s.Repo.ListMentorships(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Mentorship{}
	}
	return out, nil
}
