package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"e-course-api/internal/domain"
)

type ProgressRepo struct{ db *gorm.DB }

func NewProgressRepo(db *gorm.DB) *ProgressRepo { return &ProgressRepo{db: db} }

func (r *ProgressRepo) Find(ctx context.Context, userID, courseID string) (*domain.Progress, error) {
	var p domain.Progress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgressRepo) Create(ctx context.Context, p *domain.Progress) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProgressRepo) UpdatePage(ctx context.Context, p *domain.Progress) error {
	return r.db.WithContext(ctx).Model(&domain.Progress{}).
		Where("user_id = ? AND course_id = ?", p.UserID, p.CourseID).
		Updates(map[string]any{
			"current_page": p.CurrentPage,
			"total_pages":  p.TotalPages,
			"last_access":  p.LastAccess,
		}).Error
}

func (r *ProgressRepo) IncrementHours(ctx context.Context, userID, courseID string, by int, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.Progress{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Updates(map[string]any{
			"hours_spent": gorm.Expr("hours_spent + ?", by),
			"last_access": at,
		}).Error
}

// ListActivities progress 关联用户与课程；已软删的课程仍保留标题
func (r *ProgressRepo) ListActivities(ctx context.Context) ([]domain.Activity, error) {
	var rows []domain.Activity
	err := r.db.WithContext(ctx).
		Table("progresses AS p").
		Select(`p.user_id, COALESCE(u.name, '') AS user_name, COALESCE(u.email, '') AS user_email,
			p.course_id, COALESCE(c.title, '') AS course_title,
			p.hours_spent, p.last_access, p.current_page, p.total_pages`).
		Joins("LEFT JOIN users u ON u.id = p.user_id").
		Joins("LEFT JOIN courses c ON c.id = p.course_id").
		Order("p.last_access DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Derive()
	}
	return rows, nil
}
