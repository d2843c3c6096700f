package opportunity

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
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

func (s *Service) audit(ctx context.Context, id *uint, action string, details map[string]interface{}, err error) {
	if s.AuditSvc == nil {
		return
	}
	status := auditlog.StatusSuccess
	if err != nil {
		status = auditlog.StatusFailure
		details["error"] = err.Error()
	}
	_ = s.AuditSvc.LogAction(ctx, nil, "opportunity", id, action, details, status)
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperr.Validation("posted_by_alumni_id or organization_id does not reference an existing record")
	}
	return err
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Opportunity, error) {
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, apperr.Validation("type %q is not a valid opportunity type", filter.Type)
	}
	out, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Opportunity{}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*Opportunity, error) {
	o, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("opportunity", id)
	}
	return o, err
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Opportunity, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return nil, apperr.Validation("title and description must not be blank")
	}
	o := &Opportunity{
		PostedByAlumniID: req.PostedByAlumniID,
		OrganizationID:   req.OrganizationID,
		Type:             req.Type,
		Title:            req.Title,
		Description:      req.Description,
		IsActive:         true,
		TargetAudience:   req.TargetAudience,
	}
	if req.IsActive != nil {
		o.IsActive = *req.IsActive
	}

	err := translate(s.Repo.Create(ctx, o))
	s.audit(ctx, &o.ID, "OPPORTUNITY_CREATED", map[string]interface{}{"title": req.Title, "type": req.Type}, err)
	if err != nil {
		if apperr.KindOf(err) != apperr.KindInternal {
			return nil, err
		}
		return nil, fmt.Errorf("create opportunity: %w", err)
	}
	return o, nil
}

func (s *Service) Update(ctx context.Context, id uint, req UpdateRequest) (*Opportunity, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if req.OrganizationID.Set {
		changes["organization_id"] = req.OrganizationID.Ptr()
	}
	if req.Type.Set {
		if !req.Type.Present() || !req.Type.Value.IsValid() {
			return nil, apperr.Validation("type %q is not a valid opportunity type", req.Type.Value)
		}
		changes["type"] = req.Type.Value
	}
	if req.Title.Set {
		if !req.Title.Present() || strings.TrimSpace(req.Title.Value) == "" {
			return nil, apperr.Validation("title must not be blank")
		}
		changes["title"] = req.Title.Value
	}
	if req.Description.Set {
		if !req.Description.Present() || strings.TrimSpace(req.Description.Value) == "" {
			return nil, apperr.Validation("description must not be blank")
		}
		changes["description"] = req.Description.Value
	}
	if req.IsActive.Set {
		if !req.IsActive.Present() {
			return nil, apperr.Validation("is_active must be true or false")
		}
		changes["is_active"] = req.IsActive.Value
	}
	if req.TargetAudience.Set {
		changes["target_audience"] = req.TargetAudience.Ptr()
	}

	err := translate(s.Repo.Update(ctx, id, changes))
	s.audit(ctx, &id, "OPPORTUNITY_UPDATED", map[string]interface{}{"fields": slices.Sorted(maps.Keys(changes))}, err)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	deleted, err := s.Repo.Delete(ctx, id)
	if err == nil && !deleted {
		err = apperr.NotFound("opportunity", id)
	}
	s.audit(ctx, &id, "OPPORTUNITY_DELETED", map[string]interface{}{}, err)
	return err
}
