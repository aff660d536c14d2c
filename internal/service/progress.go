package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"e-course-api/internal/core/metrics"
	"e-course-api/internal/domain"
)

type ProgressService struct {
	store domain.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewProgressService(store domain.Store, l *zap.Logger) *ProgressService {
	return &ProgressService{store: store, log: l, now: time.Now}
}

// Get 没有记录时返回默认值，不报 NotFound
func (s *ProgressService) Get(ctx context.Context, actor domain.Actor, rawCourseID string) (domain.ProgressView, error) {
	courseID, err := parseID(rawCourseID, "course")
	if err != nil {
		return domain.ProgressView{}, err
	}
	p, err := s.store.Progress().Find(ctx, actor.ID, courseID)
	if err != nil {
		return domain.ProgressView{}, fmt.Errorf("find progress: %w", err)
	}
	if p == nil {
		return domain.DefaultProgress(actor.ID, courseID).View(), nil
	}
	return p.View(), nil
}

// SetPage 记录当前页；totalPages 传 0 时取课程页数。要求 1 <= page <= totalPages
func (s *ProgressService) SetPage(ctx context.Context, actor domain.Actor, rawCourseID string, page, totalPages int) (view domain.ProgressView, err error) {
	defer func() { metrics.ProgressUpdatesTotal.WithLabelValues("page", metrics.Result(err)).Inc() }()

	courseID, err := parseID(rawCourseID, "course")
	if err != nil {
		return view, err
	}
	var wasDone bool
	err = s.store.Tx(ctx, func(tx domain.Store) error {
		c, err := mustCourse(ctx, tx, courseID)
		if err != nil {
			return err
		}
		if totalPages == 0 {
			totalPages = c.TotalPages
		}
		if totalPages < 1 {
			return domain.Errorf(domain.ErrValidation, "totalPages must be at least 1")
		}
		if page < 1 || page > totalPages {
			return domain.Errorf(domain.ErrValidation, "page must be between 1 and %d", totalPages)
		}

		now := s.now()
		p, err := tx.Progress().Find(ctx, actor.ID, courseID)
		if err != nil {
			return fmt.Errorf("find progress: %w", err)
		}
		if p == nil {
			p = &domain.Progress{UserID: actor.ID, CourseID: courseID, CurrentPage: page, TotalPages: totalPages, LastAccess: &now}
			if err := tx.Progress().Create(ctx, p); err != nil {
				return fmt.Errorf("create progress: %w", err)
			}
		} else {
			_, wasDone = domain.Completion(p.CurrentPage, p.TotalPages)
			p.CurrentPage, p.TotalPages, p.LastAccess = page, totalPages, &now
			if err := tx.Progress().UpdatePage(ctx, p); err != nil {
				return fmt.Errorf("update progress: %w", err)
			}
		}
		view = p.View()
		return nil
	})
	if err != nil {
		return domain.ProgressView{}, err
	}
	if view.IsCompleted && !wasDone {
		metrics.CoursesCompletedTotal.Inc()
		s.log.Info("course completed", zap.String("user_id", actor.ID), zap.String("course_id", courseID))
	}
	return view, nil
}

// AddHour 学习时长 +1（前端手动触发，不按真实时间统计）
func (s *ProgressService) AddHour(ctx context.Context, actor domain.Actor, rawCourseID string) (view domain.ProgressView, err error) {
	defer func() { metrics.ProgressUpdatesTotal.WithLabelValues("hour", metrics.Result(err)).Inc() }()

	courseID, err := parseID(rawCourseID, "course")
	if err != nil {
		return view, err
	}
	err = s.store.Tx(ctx, func(tx domain.Store) error {
		c, err := mustCourse(ctx, tx, courseID)
		if err != nil {
			return err
		}
		now := s.now()
		p, err := tx.Progress().Find(ctx, actor.ID, courseID)
		if err != nil {
			return fmt.Errorf("find progress: %w", err)
		}
		if p == nil {
			p = &domain.Progress{UserID: actor.ID, CourseID: courseID, HoursSpent: 1, CurrentPage: 1, TotalPages: c.TotalPages, LastAccess: &now}
			if err := tx.Progress().Create(ctx, p); err != nil {
				return fmt.Errorf("create progress: %w", err)
			}
		} else {
			if err := tx.Progress().IncrementHours(ctx, actor.ID, courseID, 1, now); err != nil {
				return fmt.Errorf("add hour: %w", err)
			}
			if p, err = tx.Progress().Find(ctx, actor.ID, courseID); err != nil {
				return fmt.Errorf("reload progress: %w", err)
			}
		}
		view = p.View()
		return nil
	})
	if err != nil {
		return domain.ProgressView{}, err
	}
	return view, nil
}

// ListAllActivities 管理端：全部学习记录
func (s *ProgressService) ListAllActivities(ctx context.Context, actor domain.Actor) ([]domain.Activity, error) {
	if !actor.IsAdmin() {
		return nil, domain.Errorf(domain.ErrForbidden, "Only admin can access this")
	}
	acts, err := s.store.Progress().ListActivities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return acts, nil
}
