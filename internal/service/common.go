package service

import (
	"context"
	"fmt"

	"e-course-api/internal/domain"
	"e-course-api/pkg/utils"
)

func parseID(raw, what string) (string, error) {
	id, ok := utils.NormalizeID(raw)
	if !ok {
		return "", domain.Errorf(domain.ErrValidation, "Invalid %s id", what)
	}
	return id, nil
}

func mustCourse(ctx context.Context, s domain.Store, id string) (*domain.Course, error) {
	c, err := s.Courses().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find course: %w", err)
	}
	if c == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "Course not found")
	}
	return c, nil
}

func mustUser(ctx context.Context, s domain.Store, id string) (*domain.User, error) {
	u, err := s.Users().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if u == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "User not found")
	}
	return u, nil
}

// withStudents 填充 EnrolledStudents
func withStudents(ctx context.Context, s domain.Store, cs ...*domain.Course) error {
	ids := make([]string, 0, len(cs))
	for _, c := range cs {
		ids = append(ids, c.ID)
	}
	m, err := s.Enrollments().StudentIDsOf(ctx, ids...)
	if err != nil {
		return fmt.Errorf("load enrolled students: %w", err)
	}
	for _, c := range cs {
		c.EnrolledStudents = m[c.ID]
		if c.Pages == nil {
			c.Pages = []string{}
		}
	}
	return nil
}

// withCourses 填充 EnrolledCourses
func withCourses(ctx context.Context, s domain.Store, u *domain.User) error {
	ids, err := s.Enrollments().CourseIDsOf(ctx, u.ID)
	if err != nil {
		return fmt.Errorf("load enrolled courses: %w", err)
	}
	u.EnrolledCourses = ids
	return nil
}
