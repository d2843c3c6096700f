package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/alumni-portal/backend/internal/apperr"
	"github.com/alumni-portal/backend/internal/auditlog"
)

type Service struct {
	Repo     Repository
	AuditSvc auditlog.Service
}

func NewService(r Repository, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, AuditSvc: auditSvc}
}

func (s *Service) ListDepartments(ctx context.Context) ([]Department, error) {
	out, err := s.Repo.ListDepartments(ctx)
	if out == nil && err == nil {
		out = []Department{}
	}
	return out, err
}

func (s *Service) CreateDepartment(ctx context.Context, req CreateDepartmentRequest) (*Department, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("department_name must not be blank")
	}
	d := &Department{Name: name}
	err := s.Repo.CreateDepartment(ctx, d)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = apperr.Conflict("department %q already exists", name)
	}
	s.log(ctx, "department", &d.ID, "DEPARTMENT_CREATED", name, err)
	if err != nil {
		return nil, wrap("create department", err)
	}
	return d, nil
}

func (s *Service) ListOrganizations(ctx context.Context) ([]Organization, error) {
	out, err := s.Repo.ListOrganizations(ctx)
	if out == nil && err == nil {
		out = []Organization{}
	}
	return out, err
}

func (s *Service) CreateOrganization(ctx context.Context, req CreateOrganizationRequest) (*Organization, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("organization_name must not be blank")
	}
	o := &Organization{Name: name, Website: req.Website, Description: req.Description}
	err := s.Repo.CreateOrganization(ctx, o)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = apperr.Conflict("organization %q already exists", name)
	}
	s.log(ctx, "organization", &o.ID, "ORGANIZATION_CREATED", name, err)
	if err != nil {
		return nil, wrap("create organization", err)
	}
	return o, nil
}

func (s *Service) log(ctx context.Context, resource string, id *uint, action, name string, err error) {
	if s.AuditSvc == nil {
		return
	}
	status := auditlog.StatusSuccess
	details := map[string]interface{}{"name": name}
	if err != nil {
		status = auditlog.StatusFailure
		details["error"] = err.Error()
	}
	_ = s.AuditSvc.LogAction(ctx, nil, resource, id, action, details, status)
}

// wrap leaves typed errors untouched so handlers can map them.
func wrap(op string, err error) error {
	if apperr.KindOf(err) != apperr.KindInternal {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
