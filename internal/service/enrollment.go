package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"e-course-api/internal/core/metrics"
	"e-course-api/internal/domain"
	"e-course-api/internal/repo"
)

type EnrollmentService struct {
	store domain.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewEnrollmentService(store domain.Store, l *zap.Logger) *EnrollmentService {
	return &EnrollmentService{store: store, log: l, now: time.Now}
}

type EnrollResult struct {
	Course *domain.Course `json:"course"`
	User   *domain.User   `json:"user"`
}

// Enroll 学生选课。选课关系只有 enrollments 一行，双向成员关系天然一致
func (s *EnrollmentService) Enroll(ctx context.Context, actor domain.Actor, rawCourseID string) (res *EnrollResult, err error) {
	defer func() { metrics.EnrollmentsTotal.WithLabelValues("enroll", metrics.Result(err)).Inc() }()

	courseID, err := parseID(rawCourseID, "course")
	if err != nil {
		return nil, err
	}
	err = s.store.Tx(ctx, func(tx domain.Store) error {
		u, err := mustUser(ctx, tx, actor.ID)
		if err != nil {
			return err
		}
		if u.Role != domain.RoleStudent {
			return domain.Errorf(domain.ErrRole, "Only students can enroll in courses")
		}
		c, err := mustCourse(ctx, tx, courseID)
		if err != nil {
			return err
		}
		exists, err := tx.Enrollments().Exists(ctx, u.ID, c.ID)
		if err != nil {
			return fmt.Errorf("check enrollment: %w", err)
		}
		if exists {
			return domain.Errorf(domain.ErrAlreadyEnrolled, "Student already enrolled in this course")
		}
		e := &domain.Enrollment{UserID: u.ID, CourseID: c.ID, CreatedAt: s.now()}
		if err := tx.Enrollments().Create(ctx, e); err != nil {
			if repo.IsDupKey(err) {
				return domain.Errorf(domain.ErrAlreadyEnrolled, "Student already enrolled in this course")
			}
			return fmt.Errorf("create enrollment: %w", err)
		}
		if err := withStudents(ctx, tx, c); err != nil {
			return err
		}
		if err := withCourses(ctx, tx, u); err != nil {
			return err
		}
		res = &EnrollResult{Course: c, User: u}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("enrolled", zap.String("user_id", actor.ID), zap.String("course_id", courseID))
	return res, nil
}

func (s *EnrollmentService) Unenroll(ctx context.Context, actor domain.Actor, rawCourseID string) (err error) {
	defer func() { metrics.EnrollmentsTotal.WithLabelValues("unenroll", metrics.Result(err)).Inc() }()

	courseID, err := parseID(rawCourseID, "course")
	if err != nil {
		return err
	}
	err = s.store.Tx(ctx, func(tx domain.Store) error {
		c, err := mustCourse(ctx, tx, courseID)
		if err != nil {
			return err
		}
		u, err := mustUser(ctx, tx, actor.ID)
		if err != nil {
			return err
		}
		removed, err := tx.Enrollments().Delete(ctx, u.ID, c.ID)
		if err != nil {
			return fmt.Errorf("delete enrollment: %w", err)
		}
		if !removed {
			return domain.Errorf(domain.ErrNotEnrolled, "You are not enrolled in this course")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("unenrolled", zap.String("user_id", actor.ID), zap.String("course_id", courseID))
	return nil
}

// CoursesOf 用户已选课程（已下架的课程不返回）
func (s *EnrollmentService) CoursesOf(ctx context.Context, userID string) ([]domain.Course, error) {
	ids, err := s.store.Enrollments().CourseIDsOf(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load enrolled courses: %w", err)
	}
	cs, err := s.store.Courses().FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load courses: %w", err)
	}
	ptrs := make([]*domain.Course, len(cs))
	for i := range cs {
		ptrs[i] = &cs[i]
	}
	if err := withStudents(ctx, s.store, ptrs...); err != nil {
		return nil, err
	}
	return cs, nil
}
