package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"e-course-api/internal/domain"
)

// Store 是 domain.Store 的 gorm 实现；Tx 内部用同一个 *gorm.DB 构造全部仓储
type Store struct{ db *gorm.DB }

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) Users() domain.UserRepository             { return NewUserRepo(s.db) }
func (s *Store) Courses() domain.CourseRepository         { return NewCourseRepo(s.db) }
func (s *Store) Enrollments() domain.EnrollmentRepository { return NewEnrollmentRepo(s.db) }
func (s *Store) Progress() domain.ProgressRepository      { return NewProgressRepo(s.db) }

func (s *Store) Tx(ctx context.Context, fn func(domain.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// IsDupKey 唯一约束冲突；不依赖 gorm.ErrDuplicatedKey（需开启 TranslateError）
func IsDupKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}

// Ping 健康检查用
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
