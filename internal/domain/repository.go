package domain

import (
	"context"
	"time"
)

// 查不到时返回 (nil, nil)，由 service 决定是否报 NotFound

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, offset, limit int) ([]User, int64, error)
}

type CourseRepository interface {
	Create(ctx context.Context, c *Course) error
	FindByID(ctx context.Context, id string) (*Course, error)
	FindByIDs(ctx context.Context, ids []string) ([]Course, error)
	List(ctx context.Context) ([]Course, error)
	Update(ctx context.Context, c *Course) error
	Delete(ctx context.Context, id string) (bool, error)
}

type EnrollmentRepository interface {
	Exists(ctx context.Context, userID, courseID string) (bool, error)
	Create(ctx context.Context, e *Enrollment) error
	Delete(ctx context.Context, userID, courseID string) (bool, error)
	CourseIDsOf(ctx context.Context, userID string) ([]string, error)
	StudentIDsOf(ctx context.Context, courseIDs ...string) (map[string][]string, error)
}

type ProgressRepository interface {
	Find(ctx context.Context, userID, courseID string) (*Progress, error)
	Create(ctx context.Context, p *Progress) error
	UpdatePage(ctx context.Context, p *Progress) error
	IncrementHours(ctx context.Context, userID, courseID string, by int, at time.Time) error
	ListActivities(ctx context.Context) ([]Activity, error)
}

// Store 聚合各仓储；Tx 内的回调只能使用传入的 Store
type Store interface {
	Users() UserRepository
	Courses() CourseRepository
	Enrollments() EnrollmentRepository
	Progress() ProgressRepository
	Tx(ctx context.Context, fn func(s Store) error) error
}
