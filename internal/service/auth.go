package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"e-course-api/internal/core/auth"
	"e-course-api/internal/core/cache"
	"e-course-api/internal/domain"
	"e-course-api/internal/repo"
	"e-course-api/pkg/utils"
)

const minPasswordLen = 6

type RegisterInput struct {
	Name     string `json:"name"     binding:"required,max=64"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"     binding:"omitempty,oneof=student admin"`
}

type Session struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// MeView 当前用户 + 已选课程详情
type MeView struct {
	*domain.User
	Courses []domain.Course `json:"courses"`
}

type AuthService struct {
	store            domain.Store
	jwt              *auth.JWTer
	deny             cache.Denylist
	enroll           *EnrollmentService
	log              *zap.Logger
	allowAdminSignup bool
}

func NewAuthService(store domain.Store, j *auth.JWTer, deny cache.Denylist, enroll *EnrollmentService, l *zap.Logger, allowAdminSignup bool) *AuthService {
	return &AuthService{store: store, jwt: j, deny: deny, enroll: enroll, log: l, allowAdminSignup: allowAdminSignup}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = domain.RoleStudent
	}
	switch {
	case name == "":
		return nil, domain.Errorf(domain.ErrValidation, "Please add a name")
	case email == "" || !strings.Contains(email, "@"):
		return nil, domain.Errorf(domain.ErrValidation, "Please add a valid email")
	case len(in.Password) < minPasswordLen:
		return nil, domain.Errorf(domain.ErrValidation, "Password must be at least %d characters", minPasswordLen)
	case !domain.ValidRole(role):
		return nil, domain.Errorf(domain.ErrValidation, "Role must be student or admin")
	case role == domain.RoleAdmin && !s.allowAdminSignup:
		return nil, domain.Errorf(domain.ErrValidation, "Admin registration is disabled")
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{ID: utils.NewID(), Email: email, Name: name, PasswordHash: hash, Role: role}
	if err := s.store.Users().Create(ctx, u); err != nil {
		if repo.IsDupKey(err) {
			return nil, domain.Errorf(domain.ErrValidation, "Email already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	u.EnrolledCourses = []string{}
	s.log.Info("user registered", zap.String("user_id", u.ID), zap.String("role", role))
	return s.session(u)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.Errorf(domain.ErrValidation, "Please provide an email and password")
	}
	u, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, domain.Errorf(domain.ErrCredential, "Invalid credentials")
	}
	if err := withCourses(ctx, s.store, u); err != nil {
		return nil, err
	}
	return s.session(u)
}

func (s *AuthService) session(u *domain.User) (*Session, error) {
	tok, err := s.jwt.Issue(u.ID, u.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Token: tok, User: u}, nil
}

func (s *AuthService) Me(ctx context.Context, actor domain.Actor) (*MeView, error) {
	u, err := mustUser(ctx, s.store, actor.ID)
	if err != nil {
		return nil, err
	}
	if err := withCourses(ctx, s.store, u); err != nil {
		return nil, err
	}
	cs, err := s.enroll.CoursesOf(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return &MeView{User: u, Courses: cs}, nil
}

// Logout 拉黑当前 token 直到它自然过期
func (s *AuthService) Logout(ctx context.Context, c *auth.Claims) error {
	if c == nil || c.ID == "" {
		return nil
	}
	if err := s.deny.Revoke(ctx, c.ID, c.Remaining(time.Now())); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

type UserService struct{ store domain.Store }

func NewUserService(store domain.Store) *UserService { return &UserService{store: store} }

type UserPage struct {
	Total int64         `json:"total"`
	Items []domain.User `json:"items"`
}

func (s *UserService) List(ctx context.Context, actor domain.Actor, offset, limit int) (*UserPage, error) {
	if !actor.IsAdmin() {
		return nil, domain.Errorf(domain.ErrForbidden, "Only administrators can view all users")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	us, total, err := s.store.Users().List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for i := range us {
		if err := withCourses(ctx, s.store, &us[i]); err != nil {
			return nil, err
		}
	}
	return &UserPage{Total: total, Items: us}, nil
}
