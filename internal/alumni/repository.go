package alumni

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("alumni profile not found")

// Tables whose alumni_id-like column pins a profile in place.
var dependents = []struct{ table, column string }{
	{"donations", "alumni_id"},
	{"event_participations", "alumni_id"},
	{"careers", "alumni_id"},
	{"opportunities", "posted_by_alumni_id"},
	{"mentorship_requests", "alumni_id"},
	{"mentorships", "mentor_id"},
}

type Repository interface {
	ListDirectory(ctx context.Context) ([]DirectoryEntry, error)
	GetDirectoryEntry(ctx context.Context, userID uint) (*DirectoryEntry, error)
	GetByID(ctx context.Context, userID uint) (*Profile, error)
	Create(ctx context.Context, p *Profile) error
	Update(ctx context.Context, userID uint, changes map[string]interface{}) error
	Delete(ctx context.Context, userID uint) (bool, error)
	CountDependents(ctx context.Context, userID uint) (map[string]int64, error)
	Count(ctx context.Context) (int64, error)

	ListCareers(ctx context.Context, alumniID uint) ([]Career, error)
	CreateCareer(ctx context.Context, c *Career) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) directory(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("alumni_profiles ap").
		Select(`ap.user_id, ap.alumni_name, u.email, ap.ph_no, ap.graduation_year,
			ap.department_id, d.department_name, ap.bio, ap.linkedin_profile_url`).
		Joins("JOIN users u ON u.id = ap.user_id").
		Joins("JOIN departments d ON d.id = ap.department_id")
}

func (r *repository) ListDirectory(ctx context.Context) ([]DirectoryEntry, error) {
	var out []DirectoryEntry
	if err := r.directory(ctx).Order("ap.user_id ASC").Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("list alumni: %w", err)
	}
	return out, nil
}

func (r *repository) GetDirectoryEntry(ctx context.Context, userID uint) (*DirectoryEntry, error) {
	var out []DirectoryEntry
	if err := r.directory(ctx).Where("ap.user_id = ?", userID).Limit(1).Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("get alumni %d: %w", userID, err)
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return &out[0], nil
}

func (r *repository) GetByID(ctx context.Context, userID uint) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Profile) error {
	return r.db.WithContext(ctx).Omit("User", "Department").Create(p).Error
}

func (r *repository) Update(ctx context.Context, userID uint, changes map[string]interface{}) error {
	if len(changes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&Profile{}).Where("user_id = ?", userID).Updates(changes).Error
}

func (r *repository) Delete(ctx context.Context, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&Profile{})
	return res.RowsAffected > 0, res.Error
}

// CountDependents reports, per table, the rows that still reference the profile.
func (r *repository) CountDependents(ctx context.Context, userID uint) (map[string]int64, error) {
	out := map[string]int64{}
	for _, dep := range dependents {
		var n int64
		err := r.db.WithContext(ctx).Table(dep.table).Where(dep.column+" = ?", userID).Count(&n).Error
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", dep.table, err)
		}
		if n > 0 {
			out[dep.table] = n
		}
	}
	return out, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Profile{}).Count(&n).Error
	return n, err
}

func (r *repository) ListCareers(ctx context.Context, alumniID uint) ([]Career, error) {
	var out []Career
	err := r.db.WithContext(ctx).
		Where("alumni_id = ?", alumniID).
		Order("started_on DESC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *repository) CreateCareer(ctx context.Context, c *Career) error {
	return r.db.WithContext(ctx).Omit("Organization").Create(c).Error
}
