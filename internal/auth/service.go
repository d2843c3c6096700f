package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/alumni-portal/backend/internal/apperr"
	"github.com/alumni-portal/backend/internal/auditlog"
	"github.com/alumni-portal/backend/internal/metrics"
)

const minPasswordLen = 6

// Single message for every login failure so callers cannot probe usernames.
const loginFailed = "incorrect username or password"

type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id uint) (*User, error)
	UpdateUser(ctx context.Context, id uint, req UpdateUserRequest) (*User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type service struct {
	repo     Repository
	auditSvc auditlog.Service
	cost     int
}

func NewService(repo Repository, auditSvc auditlog.Service) Service {
	return &service{repo: repo, auditSvc: auditSvc, cost: bcrypt.DefaultCost}
}

func (s *service) audit(ctx context.Context, userID *uint, action string, details map[string]interface{}, err error) {
	if s.auditSvc == nil {
		return
	}
	status := auditlog.StatusSuccess
	if err != nil {
		status = auditlog.StatusFailure
		details["error"] = err.Error()
	}
	_ = s.auditSvc.LogAction(ctx, userID, "user", userID, action, details, status)
}

func (s *service) hash(password string) (string, error) {
	if len(password) < minPasswordLen {
		return "", apperr.Validation("password must be at least %d characters", minPasswordLen)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// =============================
// Signup
// =============================
func (s *service) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperr.Validation("username must not be blank")
	}
	role, ok := ParseRole(req.Role)
	if !ok {
		return nil, apperr.Validation("role must be one of Student, Alumni, Admin")
	}
	hash, err := s.hash(req.password())
	if err != nil {
		return nil, err
	}

	user := &User{Username: username, Email: req.Email, PasswordHash: hash, Role: role}
	err = s.repo.Create(ctx, user)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = apperr.Conflict("username or email already exists")
	}
	s.audit(ctx, &user.ID, "USER_SIGNUP", map[string]interface{}{"username": username, "role": role}, err)
	if err != nil {
		if apperr.KindOf(err) != apperr.KindInternal {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// =============================
// Login
// =============================
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	identifier := strings.TrimSpace(req.identifier())
	user, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	var failure error
	switch {
	case user == nil:
		failure = apperr.Unauthorized(loginFailed)
	case bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil:
		failure = apperr.Unauthorized(loginFailed)
	case !strings.EqualFold(strings.TrimSpace(req.Role), string(user.Role)):
		failure = apperr.Unauthorized(loginFailed)
	}

	var userID *uint
	if user != nil {
		userID = &user.ID
	}
	s.audit(ctx, userID, "USER_LOGIN", map[string]interface{}{"identifier": identifier}, failure)

	if failure != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		zerolog.Ctx(ctx).Info().Str("identifier", identifier).Msg("login rejected")
		return nil, failure
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &LoginResponse{Message: "Welcome " + user.Username, Role: user.Role}, nil
}

// =============================
// Users
// =============================
func (s *service) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

func (s *service) GetUser(ctx context.Context, id uint) (*User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("user", id)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) UpdateUser(ctx context.Context, id uint, req UpdateUserRequest) (*User, error) {
	if _, err := s.GetUser(ctx, id); err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if req.Username.Set {
		if !req.Username.Present() || strings.TrimSpace(req.Username.Value) == "" {
			return nil, apperr.Validation("username must not be blank")
		}
		changes["username"] = strings.TrimSpace(req.Username.Value)
	}
	if req.Email.Set {
		changes["email"] = req.Email.Ptr()
	}
	if req.Password.Set {
		hash, err := s.hash(req.Password.Value)
		if err != nil {
			return nil, err
		}
		changes["password_hash"] = hash
	}
	if req.Role.Set {
		role, ok := ParseRole(req.Role.Value)
		if !req.Role.Present() || !ok {
			return nil, apperr.Validation("role must be one of Student, Alumni, Admin")
		}
		changes["role"] = role
	}

	fields := make([]string, 0, len(changes))
	for k := range changes {
		fields = append(fields, k)
	}

	err := s.repo.Update(ctx, id, changes)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = apperr.Conflict("username or email already in use")
	}
	s.audit(ctx, &id, "USER_UPDATED", map[string]interface{}{"fields": fields}, err)
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

// DeleteUser removes a user and its student/admin profile. A user that still
// has an alumni profile or mentorship requests is kept.
func (s *service) DeleteUser(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		err = apperr.Conflict("user %d is still referenced by other records", id)
	case err == nil && !deleted:
		err = apperr.NotFound("user", id)
	}
	s.audit(ctx, &id, "USER_DELETED", map[string]interface{}{}, err)
	return err
}
