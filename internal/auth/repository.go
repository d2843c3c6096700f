package auth

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByIdentifier(ctx context.Context, identifier string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id uint, changes map[string]interface{}) error
	Delete(ctx context.Context, id uint) (bool, error)
	ExistsWithRole(ctx context.Context, id uint, role UserRole) (bool, error)
	CreateStudentProfile(ctx context.Context, p *StudentProfile) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByIdentifier looks a user up by username, then by email.
func (r *repository) FindByIdentifier(ctx context.Context, identifier string) (*User, error) {
	for _, column := range []string{"username", "email"} {
		var user User
		err := r.db.WithContext(ctx).Where(column+" = ?", identifier).Take(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &user, nil
	}
	return nil, ErrNotFound
}

func (r *repository) FindByID(ctx context.Context, id uint) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &user, err
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error
	return users, err
}

func (r *repository) Update(ctx context.Context, id uint, changes map[string]interface{}) error {
	if len(changes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(changes).Error
}

func (r *repository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&User{}, id)
	return res.RowsAffected > 0, res.Error
}

func (r *repository) ExistsWithRole(ctx context.Context, id uint, role UserRole) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&User{}).Where("id = ? AND role = ?", id, role).Count(&n).Error
	return n > 0, err
}

func (r *repository) CreateStudentProfile(ctx context.Context, p *StudentProfile) error {
	return r.db.WithContext(ctx).Omit("User", "Department").Create(p).Error
}
