package mentorship

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound   = errors.New("mentorship request not found")
	ErrNotPending = errors.New("mentorship request already decided")
)

type Repository interface {
	ListRequests(ctx context.Context, status Status) ([]Request, error)
	GetRequest(ctx context.Context, id uint) (*Request, error)
	CreateRequest(ctx context.Context, r *Request) error
	Decide(ctx context.Context, id uint, status Status, adminID *uint, feedback *string) (*Decision, error)
	ListMentorships(ctx context.Context) ([]Mentorship, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListRequests(ctx context.Context, status Status) ([]Request, error) {
	query := r.db.WithContext(ctx)
	if status != "" {
		query = query.Where("req_status = ?", status)
	}
	var out []Request
	err := query.Order("id ASC").Find(&out).Error
	return out, err
}

func (r *repository) GetRequest(ctx context.Context, id uint) (*Request, error) {
	var req Request
	err := r.db.WithContext(ctx).First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) CreateRequest(ctx context.Context, req *Request) error {
	return r.db.WithContext(ctx).Omit("Student", "Alumni", "ActionAdmin").Create(req).Error
}

// Decide locks the request row, moves it out of Pending and, on acceptance,
// opens the mentorship in the same transaction.
func (r *repository) Decide(ctx context.Context, id uint, status Status, adminID *uint, feedback *string) (*Decision, error) {
	var out Decision
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req Request
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&req, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if req.Status != StatusPending {
			return ErrNotPending
		}

		err = tx.Model(&Request{}).Where("id = ?", id).Updates(map[string]interface{}{
			"req_status":      status,
			"action_taken_by": adminID,
		}).Error
		if err != nil {
			return err
		}
		req.Status = status
		req.ActionTakenBy = adminID
		out.Request = req

		if status == StatusAccepted {
			m := &Mentorship{RequestID: req.ID, MentorID: req.AlumniID, Feedback: feedback}
			if err := tx.Omit("Request", "Mentor").Create(m).Error; err != nil {
				return err
			}
			out.Mentorship = m
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repository) ListMentorships(ctx context.Context) ([]Mentorship, error) {
	var out []Mentorship
	err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}
