package donation

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("donation not found")

type Repository interface {
	Create(ctx context.Context, d *Donation) error
	GetByID(ctx context.Context, id uint) (*DonationWithDonor, error)
	ListWithFilters(ctx context.Context, filters DonationFilters) ([]DonationWithDonor, int64, error)
	Sum(ctx context.Context) (decimal.Decimal, error)
	Totals(ctx context.Context) (count int64, donors int64, err error)
	TopDonors(ctx context.Context, limit int) ([]TopDonor, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, d *Donation) error {
	return r.db.WithContext(ctx).Omit("Alumni", "Event").Create(d).Error
}

func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("donations d").
		Select("d.*, ap.alumni_name, e.event_name").
		Joins("JOIN alumni_profiles ap ON ap.user_id = d.alumni_id").
		Joins("LEFT JOIN events e ON e.id = d.event_id")
}

func (r *repository) GetByID(ctx context.Context, id uint) (*DonationWithDonor, error) {
	var out []DonationWithDonor
	if err := r.joined(ctx).Where("d.id = ?", id).Limit(1).Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("get donation %d: %w", id, err)
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return &out[0], nil
}

func (r *repository) applyFilters(query *gorm.DB, f DonationFilters) *gorm.DB {
	if f.AlumniID != nil {
		query = query.Where("d.alumni_id = ?", *f.AlumniID)
	}
	if f.EventID != nil {
		query = query.Where("d.event_id = ?", *f.EventID)
	}
	if f.From != nil {
		query = query.Where("d.donation_date >= ?", *f.From)
	}
	if f.To != nil {
		query = query.Where("d.donation_date <= ?", *f.To)
	}
	return query
}

func (r *repository) ListWithFilters(ctx context.Context, f DonationFilters) ([]DonationWithDonor, int64, error) {
	var total int64
	countQuery := r.applyFilters(r.db.WithContext(ctx).Table("donations d"), f)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count donations: %w", err)
	}

	var out []DonationWithDonor
	err := r.applyFilters(r.joined(ctx), f).
		Order("d.donation_date DESC, d.id DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Scan(&out).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list donations: %w", err)
	}
	return out, total, nil
}

func (r *repository) Sum(ctx context.Context) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&Donation{}).Select("COALESCE(SUM(amount), 0) AS total").Scan(&row).Error
	return row.Total, err
}

func (r *repository) Totals(ctx context.Context) (int64, int64, error) {
	var row struct {
		Count  int64
		Donors int64
	}
	err := r.db.WithContext(ctx).Model(&Donation{}).
		Select("COUNT(*) AS count, COUNT(DISTINCT alumni_id) AS donors").
		Scan(&row).Error
	return row.Count, row.Donors, err
}

func (r *repository) TopDonors(ctx context.Context, limit int) ([]TopDonor, error) {
	var out []TopDonor
	err := r.db.WithContext(ctx).
		Table("donations d").
		Select("d.alumni_id, ap.alumni_name, SUM(d.amount) AS total, COUNT(*) AS count").
		Joins("JOIN alumni_profiles ap ON ap.user_id = d.alumni_id").
		Group("d.alumni_id, ap.alumni_name").
		Order("total DESC, d.alumni_id ASC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}
