package domain

import (
	"math"
	"time"
)

type Progress struct {
	UserID      string     `gorm:"primaryKey;size:36" json:"userId"`
	CourseID    string     `gorm:"primaryKey;size:36" json:"courseId"`
	HoursSpent  int        `gorm:"not null;default:0" json:"hoursSpent"`
	LastAccess  *time.Time `json:"lastAccess"`
	CurrentPage int        `gorm:"not null;default:1" json:"currentPage"`
	TotalPages  int        `gorm:"not null;default:1" json:"totalPages"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Progress) TableName() string { return "progresses" }

// Completion 是完成度的唯一计算口径
func Completion(currentPage, totalPages int) (percent int, completed bool) {
	if totalPages <= 0 {
		return 0, false
	}
	percent = int(math.Round(float64(currentPage) / float64(totalPages) * 100))
	return percent, currentPage >= totalPages
}

// DefaultProgress 尚无记录时返回的零值视图
func DefaultProgress(userID, courseID string) Progress {
	return Progress{UserID: userID, CourseID: courseID, CurrentPage: 0, TotalPages: 1}
}

// ProgressView 是对外返回的 progress，附带派生字段
type ProgressView struct {
	Progress
	ProgressPercent int  `json:"progressPercent"`
	IsCompleted     bool `json:"isCompleted"`
}

func (p Progress) View() ProgressView {
	pct, done := Completion(p.CurrentPage, p.TotalPages)
	return ProgressView{Progress: p, ProgressPercent: pct, IsCompleted: done}
}

// Activity 管理端报表行：progress + 用户 + 课程
type Activity struct {
	UserID          string     `json:"userId"`
	UserName        string     `json:"userName"`
	UserEmail       string     `json:"userEmail"`
	CourseID        string     `json:"courseId"`
	CourseTitle     string     `json:"courseTitle"`
	HoursSpent      int        `json:"hoursSpent"`
	LastAccess      *time.Time `json:"lastAccess"`
	CurrentPage     int        `json:"currentPage"`
	TotalPages      int        `json:"totalPages"`
	ProgressPercent int        `json:"progressPercent" gorm:"-"`
	IsCompleted     bool       `json:"isCompleted" gorm:"-"`
}

func (a *Activity) Derive() {
	a.ProgressPercent, a.IsCompleted = Completion(a.CurrentPage, a.TotalPages)
}
