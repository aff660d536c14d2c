package domain

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const MaxTitleLen = 100

type Course struct {
	ID          string                      `gorm:"primaryKey;size:36" json:"id"`
	Title       string                      `gorm:"size:100;not null" json:"title"`
	Description string                      `gorm:"type:text;not null" json:"description"`
	Pages       datatypes.JSONSlice[string] `json:"pages"`
	TotalPages  int                         `gorm:"not null;default:1" json:"totalPages"`
	Instructor  string                      `gorm:"size:128;not null" json:"instructor"`
	Duration    int                         `gorm:"not null" json:"duration"` // 小时
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt              `gorm:"index" json:"-"`

	EnrolledStudents []string `gorm:"-" json:"enrolledStudents"`
}

func (Course) TableName() string { return "courses" }

// SyncTotalPages 有页面内容时以页数为准，否则沿用声明值，最小为 1
func (c *Course) SyncTotalPages() {
	if n := len(c.Pages); n > 0 {
		c.TotalPages = n
	}
	if c.TotalPages < 1 {
		c.TotalPages = 1
	}
}

// Enrollment 是 user 与 course 之间唯一的选课记录，双向成员关系都从这里派生
type Enrollment struct {
	UserID    string    `gorm:"primaryKey;size:36" json:"userId"`
	CourseID  string    `gorm:"primaryKey;size:36;index" json:"courseId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Enrollment) TableName() string { return "enrollments" }
