package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"e-course-api/internal/domain"
	"e-course-api/pkg/utils"
)

// CourseInput 创建/更新课程的入参；nil 表示未传（更新时保持原值）
type CourseInput struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Content     *string  `json:"content"` // 单页内容，pages 为空时作为第一页
	Pages       []string `json:"pages"`
	TotalPages  any      `json:"totalPages"` // number 或数字字符串
	Instructor  *string  `json:"instructor"`
	Duration    any      `json:"duration"`
}

type CatalogService struct {
	store domain.Store
	log   *zap.Logger
}

func NewCatalogService(store domain.Store, l *zap.Logger) *CatalogService {
	return &CatalogService{store: store, log: l}
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Course, error) {
	cs, err := s.store.Courses().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
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

func (s *CatalogService) Get(ctx context.Context, rawID string) (*domain.Course, error) {
	id, err := parseID(rawID, "course")
	if err != nil {
		return nil, err
	}
	c, err := mustCourse(ctx, s.store, id)
	if err != nil {
		return nil, err
	}
	if err := withStudents(ctx, s.store, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) Create(ctx context.Context, actor domain.Actor, in CourseInput) (*domain.Course, error) {
	if !actor.IsAdmin() {
		return nil, domain.Errorf(domain.ErrRole, "Only administrators can create courses")
	}
	c := &domain.Course{ID: utils.NewID()}
	if err := apply(c, in, true); err != nil {
		return nil, err
	}
	if err := s.store.Courses().Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	c.EnrolledStudents = []string{}
	s.log.Info("course created", zap.String("course_id", c.ID), zap.String("by", actor.ID))
	return c, nil
}

func (s *CatalogService) Update(ctx context.Context, actor domain.Actor, rawID string, in CourseInput) (*domain.Course, error) {
	if !actor.IsAdmin() {
		return nil, domain.Errorf(domain.ErrRole, "Only administrators can update courses")
	}
	id, err := parseID(rawID, "course")
	if err != nil {
		return nil, err
	}
	c, err := mustCourse(ctx, s.store, id)
	if err != nil {
		return nil, err
	}
	if err := apply(c, in, false); err != nil {
		return nil, err
	}
	if err := s.store.Courses().Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}
	if err := withStudents(ctx, s.store, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete 软删，不清理 enrollments / progresses
func (s *CatalogService) Delete(ctx context.Context, actor domain.Actor, rawID string) error {
	if !actor.IsAdmin() {
		return domain.Errorf(domain.ErrRole, "Only administrators can delete courses")
	}
	id, err := parseID(rawID, "course")
	if err != nil {
		return err
	}
	ok, err := s.store.Courses().Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if !ok {
		return domain.Errorf(domain.ErrNotFound, "Course not found")
	}
	s.log.Info("course deleted", zap.String("course_id", id), zap.String("by", actor.ID))
	return nil
}

func apply(c *domain.Course, in CourseInput, create bool) error {
	if in.Title != nil || create {
		t := strings.TrimSpace(deref(in.Title))
		if t == "" {
			return domain.Errorf(domain.ErrValidation, "Please add a course title")
		}
		if len([]rune(t)) > domain.MaxTitleLen {
			return domain.Errorf(domain.ErrValidation, "Title cannot be more than %d characters", domain.MaxTitleLen)
		}
		c.Title = t
	}
	if in.Description != nil || create {
		d := strings.TrimSpace(deref(in.Description))
		if d == "" {
			return domain.Errorf(domain.ErrValidation, "Please add a description")
		}
		c.Description = d
	}
	if in.Instructor != nil || create {
		i := strings.TrimSpace(deref(in.Instructor))
		if i == "" {
			return domain.Errorf(domain.ErrValidation, "Please add an instructor name")
		}
		c.Instructor = i
	}

	d, ok, err := coerceInt(in.Duration)
	switch {
	case err != nil:
		return domain.Errorf(domain.ErrValidation, "Course duration must be a number")
	case ok:
		if d < 1 {
			return domain.Errorf(domain.ErrValidation, "Course duration must be a positive number of hours")
		}
		c.Duration = d
	case create:
		return domain.Errorf(domain.ErrValidation, "Please add course duration in hours")
	}

	switch {
	case in.Pages != nil:
		c.Pages = in.Pages
	case in.Content != nil && strings.TrimSpace(*in.Content) != "":
		c.Pages = []string{*in.Content}
	}
	tp, ok, err := coerceInt(in.TotalPages)
	if err != nil {
		return domain.Errorf(domain.ErrValidation, "totalPages must be a number")
	}
	if ok {
		if tp < 1 {
			return domain.Errorf(domain.ErrValidation, "totalPages must be at least 1")
		}
		c.TotalPages = tp
	}
	c.SyncTotalPages()
	return nil
}

// coerceInt 接受 JSON number 或数字字符串；nil / "" 视为未传
func coerceInt(v any) (int, bool, error) {
	if v == nil {
		return 0, false, nil
	}
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false, nil
		}
		v = s
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
