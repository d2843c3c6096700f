package opportunity

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("opportunity not found")

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Opportunity, error)
	GetByID(ctx context.Context, id uint) (*Opportunity, error)
	Create(ctx context.Context, o *Opportunity) error
	Update(ctx context.Context, id uint, changes map[string]interface{}) error
	Delete(ctx context.Context, id uint) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Opportunity, error) {
	query := r.db.WithContext(ctx)
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	var out []Opportunity
	err := query.Order("id ASC").Find(&out).Error
	return out, err
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Opportunity, error) {
	var o Opportunity
	err := r.db.WithContext(ctx).First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) Create(ctx context.Context, o *Opportunity) error {
	return r.db.WithContext(ctx).Omit("PostedBy", "Organization").Create(o).Error
}

func (r *repository) Update(ctx context.Context, id uint, changes map[string]interface{}) error {
	if len(changes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&Opportunity{}).Where("id = ?", id).Updates(changes).Error
}

func (r *repository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&Opportunity{}, id)
	return res.RowsAffected > 0, res.Error
}
