package auditlog

import (
	"context"
	"encoding/json"
	"math"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/alumni-portal/backend/internal/metrics"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type Service interface {
	LogAction(ctx context.Context, userID *uint, resource string, resourceID *uint, action string, details map[string]interface{}, status string) error
	GetAuditLogs(ctx context.Context, filter AuditLogFilter) (*PaginatedAuditLogs, error)
	GetAuditLogByID(ctx context.Context, id uint) (*AuditLogResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

type ipKey struct{}

// WithClientIP stores the caller's address for audit rows written under ctx.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ipKey{}, ip)
}

func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(ipKey{}).(string)
	return ip
}

// LogAction records one audit row. A failed write is returned but callers
// treat it as non-fatal.
func (s *service) LogAction(ctx context.Context, userID *uint, resource string, resourceID *uint, action string, details map[string]interface{}, status string) error {
	if details == nil {
		details = make(map[string]interface{})
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	metrics.MutationsTotal.WithLabelValues(resource, action, status).Inc()

	err = s.repo.Create(ctx, &AuditLog{
		UserID:     userID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Details:    datatypes.JSON(detailsJSON),
		IPAddress:  ClientIP(ctx),
		Status:     status,
	})
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("action", action).Msg("audit log write failed")
	}
	return err
}

func (s *service) GetAuditLogs(ctx context.Context, filter AuditLogFilter) (*PaginatedAuditLogs, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}

	logs, total, err := s.repo.GetByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []AuditLogResponse{}
	}

	return &PaginatedAuditLogs{
		Data:       logs,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

func (s *service) GetAuditLogByID(ctx context.Context, id uint) (*AuditLogResponse, error) {
	return s.repo.GetByID(ctx, id)
}
