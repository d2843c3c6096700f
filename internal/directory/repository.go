package directory

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	ListDepartments(ctx context.Context) ([]Department, error)
	CreateDepartment(ctx context.Context, d *Department) error
	DepartmentExists(ctx context.Context, id uint) (bool, error)
	ListOrganizations(ctx context.Context) ([]Organization, error)
	CreateOrganization(ctx context.Context, o *Organization) error
	OrganizationExists(ctx context.Context, id uint) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListDepartments(ctx context.Context) ([]Department, error) {
	var out []Department
	err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *repository) CreateDepartment(ctx context.Context, d *Department) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) DepartmentExists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Department{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *repository) ListOrganizations(ctx context.Context) ([]Organization, error) {
	var out []Organization
	err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *repository) CreateOrganization(ctx context.Context, o *Organization) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *repository) OrganizationExists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Organization{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}
