package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompletion(t *testing.T) {
	cases := []struct {
		name          string
		current, total int
		pct           int
		done          bool
	}{
		{"empty", 0, 1, 0, false},
		{"partial", 3, 5, 60, false},
		{"rounding", 1, 3, 33, false},
		{"rounding up", 2, 3, 67, false},
		{"last page", 5, 5, 100, true},
		{"past end", 7, 5, 140, true},
		{"no pages", 1, 0, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pct, done := Completion(tc.current, tc.total)
			assert.Equal(t, tc.pct, pct)
			assert.Equal(t, tc.done, done)
		})
	}
}

func TestDefaultProgressIsNotCompleted(t *testing.T) {
	v := DefaultProgress("u", "c").View()
	assert.Equal(t, 0, v.HoursSpent)
	assert.Equal(t, 1, v.TotalPages)
	assert.False(t, v.IsCompleted)
	assert.Equal(t, 0, v.ProgressPercent)
	assert.Nil(t, v.LastAccess)
}

func TestSyncTotalPages(t *testing.T) {
	c := Course{Pages: []string{"a", "b", "c"}, TotalPages: 10}
	c.SyncTotalPages()
	assert.Equal(t, 3, c.TotalPages)

	c = Course{TotalPages: 4}
	c.SyncTotalPages()
	assert.Equal(t, 4, c.TotalPages)

	c = Course{}
	c.SyncTotalPages()
	assert.Equal(t, 1, c.TotalPages)
}

func TestErrorKind(t *testing.T) {
	err := Errorf(ErrAlreadyEnrolled, "Student already enrolled in this course")
	assert.True(t, errors.Is(err, ErrAlreadyEnrolled))
	assert.False(t, errors.Is(err, ErrNotEnrolled))
	assert.Equal(t, "Student already enrolled in this course", err.Error())
	assert.Equal(t, "not found", (&Error{Kind: ErrNotFound}).Error())
}
