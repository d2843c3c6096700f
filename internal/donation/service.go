package donation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/alumni-portal/backend/internal/apperr"
	"github.com/alumni-portal/backend/internal/auditlog"
)

const (
	defaultLimit  = 50
	maxLimit      = 200
	topDonorLimit = 5
)

// decimal(10,2) upper bound
var maxAmount = decimal.New(1, 8).Sub(decimal.New(1, -2))

type Service interface {
	CreateDonation(ctx context.Context, req CreateDonationRequest) (*Donation, error)
	GetDonation(ctx context.Context, id uint) (*DonationWithDonor, error)
	ListDonations(ctx context.Context, filters DonationFilters) (*PaginatedDonations, error)
	TotalAmount(ctx context.Context) (decimal.Decimal, error)
	GetStats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo     Repository
	auditSvc auditlog.Service
	now      func() time.Time
}

func NewService(repo Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, auditSvc: auditSvc, now: time.Now}
}

// ==============================
// 💰 Record Donation
func (s *service) CreateDonation(ctx context.Context, req CreateDonationRequest) (*Donation, error) {
	if !req.Amount.IsPositive() {
		return nil, apperr.Validation("amount must be greater than zero")
	}
	if !req.Amount.Equal(req.Amount.Round(2)) {
		return nil, apperr.Validation("amount must have at most two decimal places")
	}
	if req.Amount.GreaterThan(maxAmount) {
		return nil, apperr.Validation("amount must not exceed %s", maxAmount.StringFixed(2))
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	txID := strings.TrimSpace(req.TransactionID)
	if txID == "" {
		txID = uuid.NewString()
	}
	date := s.now().UTC()
	if req.DonationDate != nil {
		date = *req.DonationDate
	}

	d := &Donation{
		AlumniID:      req.AlumniID,
		EventID:       req.EventID,
		Amount:        req.Amount,
		Currency:      currency,
		TransactionID: txID,
		DonationDate:  date,
	}

	err := s.repo.Create(ctx, d)
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		err = apperr.Conflict("transaction_id %q already recorded", txID)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		err = apperr.Validation("alumni_id or event_id does not reference an existing record")
	}

	if s.auditSvc != nil {
		status := auditlog.StatusSuccess
		details := map[string]interface{}{
			"alumni_id":      req.AlumniID,
			"event_id":       req.EventID,
			"amount":         req.Amount.StringFixed(2),
			"currency":       currency,
			"transaction_id": txID,
		}
		if err != nil {
			status = auditlog.StatusFailure
			details["error"] = err.Error()
		}
		_ = s.auditSvc.LogAction(ctx, nil, "donation", &d.ID, "DONATION_RECORDED", details, status)
	}

	if err != nil {
		if apperr.KindOf(err) != apperr.KindInternal {
			return nil, err
		}
		return nil, fmt.Errorf("record donation: %w", err)
	}
	return d, nil
}

func (s *service) GetDonation(ctx context.Context, id uint) (*DonationWithDonor, error) {
	d, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("donation", id)
	}
	return d, err
}

func (s *service) ListDonations(ctx context.Context, filters DonationFilters) (*PaginatedDonations, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.Limit <= 0 {
		filters.Limit = defaultLimit
	}
	if filters.Limit > maxLimit {
		filters.Limit = maxLimit
	}

	data, total, err := s.repo.ListWithFilters(ctx, filters)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = []DonationWithDonor{}
	}
	return &PaginatedDonations{Data: data, Total: total, Page: filters.Page, Limit: filters.Limit}, nil
}

// TotalAmount is the sum of every recorded donation.
func (s *service) TotalAmount(ctx context.Context) (decimal.Decimal, error) {
	return s.repo.Sum(ctx)
}

func (s *service) GetStats(ctx context.Context) (*Stats, error) {
	sum, err := s.repo.Sum(ctx)
	if err != nil {
		return nil, err
	}
	count, donors, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.TopDonors(ctx, topDonorLimit)
	if err != nil {
		return nil, err
	}
	if top == nil {
		top = []TopDonor{}
	}
	return &Stats{TotalAmount: sum, Count: count, UniqueDonor: donors, TopDonors: top}, nil
}
