package repo

import (
	"context"

	"gorm.io/gorm"

	"e-course-api/internal/domain"
)

type EnrollmentRepo struct{ db *gorm.DB }

func NewEnrollmentRepo(db *gorm.DB) *EnrollmentRepo { return &EnrollmentRepo{db: db} }

func (r *EnrollmentRepo) Exists(ctx context.Context, userID, courseID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&n).Error
	return n > 0, err
}

func (r *EnrollmentRepo) Create(ctx context.Context, e *domain.Enrollment) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EnrollmentRepo) Delete(ctx context.Context, userID, courseID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&domain.Enrollment{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CourseIDsOf 用户已选课程，按选课先后
func (r *EnrollmentRepo) CourseIDsOf(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).Model(&domain.Enrollment{}).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Pluck("course_id", &ids).Error
	return ids, err
}

// StudentIDsOf 每门课的学生 id，按选课先后；没有学生的课程也会有空切片
func (r *EnrollmentRepo) StudentIDsOf(ctx context.Context, courseIDs ...string) (map[string][]string, error) {
	out := make(map[string][]string, len(courseIDs))
	for _, id := range courseIDs {
		out[id] = []string{}
	}
	if len(courseIDs) == 0 {
		return out, nil
	}
	var rows []domain.Enrollment
	err := r.db.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Order("created_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, e := range rows {
		out[e.CourseID] = append(out[e.CourseID], e.UserID)
	}
	return out, nil
}
