package event

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type Repository interface {
	ListWithOrganizer(ctx context.Context) ([]EventWithOrganizer, error)
	GetWithOrganizer(ctx context.Context, id uint) (*EventWithOrganizer, error)
	GetByID(ctx context.Context, id uint) (*Event, error)
	Create(ctx context.Context, e *Event) error
	Update(ctx context.Context, id uint, changes map[string]interface{}) error
	Delete(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)

	ListOrganizers(ctx context.Context) ([]EventOrganizer, error)
	GetOrganizer(ctx context.Context, id uint) (*EventOrganizer, error)
	CreateOrganizer(ctx context.Context, o *EventOrganizer) error
	UpdateOrganizer(ctx context.Context, id uint, changes map[string]interface{}) error
	DeleteOrganizer(ctx context.Context, id uint) (bool, error)
	CountEventsByOrganizer(ctx context.Context, organizerID uint) (int64, error)

	ListParticipants(ctx context.Context, eventID uint) ([]Participation, error)
	AddParticipant(ctx context.Context, p *Participation) error
	RemoveParticipant(ctx context.Context, eventID, alumniID uint) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ErrNotFound is returned by lookups that find no row.
var ErrNotFound = errors.New("record not found")

func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&Event{}).
		Select("events.*, event_organizers.event_org_name AS organizer_name").
		Joins("JOIN event_organizers ON event_organizers.id = events.event_org_id")
}

// ===========================
// 📄 Events, in ascending id order
func (r *repository) ListWithOrganizer(ctx context.Context) ([]EventWithOrganizer, error) {
	var rows []EventWithOrganizer
	if err := r.joined(ctx).Order("events.id ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return rows, nil
}

func (r *repository) GetWithOrganizer(ctx context.Context, id uint) (*EventWithOrganizer, error) {
	var rows []EventWithOrganizer
	if err := r.joined(ctx).Where("events.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("get event %d: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Event, error) {
	var e Event
	err := r.db.WithContext(ctx).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event %d: %w", id, err)
	}
	return &e, nil
}

func (r *repository) Create(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Omit("Organizer").Create(e).Error
}

// Update writes only the given columns.
func (r *repository) Update(ctx context.Context, id uint, changes map[string]interface{}) error {
	if len(changes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&Event{}).Where("id = ?", id).Updates(changes).Error
}

// ===========================
// 🗑️ Delete an event with its participations; donations are detached.
func (r *repository) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&Participation{}).Error; err != nil {
			return fmt.Errorf("delete participations: %w", err)
		}
		if err := tx.Table("donations").Where("event_id = ?", id).Update("event_id", nil).Error; err != nil {
			return fmt.Errorf("detach donations: %w", err)
		}
		res := tx.Delete(&Event{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Event{}).Count(&n).Error
	return n, err
}

// ===========================
// 🏷️ Organizers
func (r *repository) ListOrganizers(ctx context.Context) ([]EventOrganizer, error) {
	var orgs []EventOrganizer
	err := r.db.WithContext(ctx).Order("id ASC").Find(&orgs).Error
	return orgs, err
}

func (r *repository) GetOrganizer(ctx context.Context, id uint) (*EventOrganizer, error) {
	var o EventOrganizer
	err := r.db.WithContext(ctx).First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get organizer %d: %w", id, err)
	}
	return &o, nil
}

func (r *repository) CreateOrganizer(ctx context.Context, o *EventOrganizer) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *repository) UpdateOrganizer(ctx context.Context, id uint, changes map[string]interface{}) error {
	if len(changes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&EventOrganizer{}).Where("id = ?", id).Updates(changes).Error
}

func (r *repository) DeleteOrganizer(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&EventOrganizer{}, id)
	return res.RowsAffected > 0, res.Error
}

func (r *repository) CountEventsByOrganizer(ctx context.Context, organizerID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Event{}).Where("event_org_id = ?", organizerID).Count(&n).Error
	return n, err
}

// ===========================
// 👥 Participants
func (r *repository) ListParticipants(ctx context.Context, eventID uint) ([]Participation, error) {
	var ps []Participation
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Order("alumni_id ASC").Find(&ps).Error
	return ps, err
}

func (r *repository) AddParticipant(ctx context.Context, p *Participation) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) RemoveParticipant(ctx context.Context, eventID, alumniID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("event_id = ? AND alumni_id = ?", eventID, alumniID).
		Delete(&Participation{})
	return res.RowsAffected > 0, res.Error
}
