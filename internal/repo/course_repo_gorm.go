package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"e-course-api/internal/domain"
)

type CourseRepo struct{ db *gorm.DB }

func NewCourseRepo(db *gorm.DB) *CourseRepo { return &CourseRepo{db: db} }

func (r *CourseRepo) Create(ctx context.Context, c *domain.Course) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CourseRepo) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	var c domain.Course
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByIDs 按传入 id 的顺序返回，已删除的课程跳过
func (r *CourseRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.Course, error) {
	if len(ids) == 0 {
		return []domain.Course{}, nil
	}
	var rows []domain.Course
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Course, len(rows))
	for _, c := range rows {
		byID[c.ID] = c
	}
	out := make([]domain.Course, 0, len(rows))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *CourseRepo) List(ctx context.Context) ([]domain.Course, error) {
	var cs []domain.Course
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}

// Update 整行保存（调用方已合并好字段）
func (r *CourseRepo) Update(ctx context.Context, c *domain.Course) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Delete 软删；不级联 enrollments / progresses
func (r *CourseRepo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Course{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
