package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"e-course-api/internal/core/metrics"
	"e-course-api/internal/domain"
	"e-course-api/pkg/utils"
)

func TestGetProgress_DefaultWhenMissing(t *testing.T) {
	e := newEnv(t)
	stu := e.user(t, "ann", domain.RoleStudent)
	c := e.course(t, "Go", 5)

	v, err := e.progress.Get(context.Background(), stu, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, v.HoursSpent)
	assert.Equal(t, 0, v.CurrentPage)
	assert.Equal(t, 1, v.TotalPages)
	assert.Equal(t, 0, v.ProgressPercent)
	assert.False(t, v.IsCompleted)
	assert.Nil(t, v.LastAccess)

	// 读不产生记录
	p, err := e.store.Progress().Find(context.Background(), stu.ID, c.ID)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestSetPage_PercentAndCompletion(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	stu := e.user(t, "ann", domain.RoleStudent)
	c := e.course(t, "Go", 5)
	before := testutil.ToFloat64(metrics.CoursesCompletedTotal)

	v, err := e.progress.SetPage(ctx, stu, c.ID, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, 60, v.ProgressPercent)
	assert.False(t, v.IsCompleted)
	require.NotNil(t, v.LastAccess)
	first := *v.LastAccess

	e.clock.Advance(time.Minute)
	v, err = e.progress.SetPage(ctx, stu, c.ID, 5, 5)
	require.NoError(t, err)
	assert.Equal(t, 100, v.ProgressPercent)
	assert.True(t, v.IsCompleted)
	assert.True(t, v.LastAccess.After(first))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.CoursesCompletedTotal))

	// 已完成再次设置不重复计数
	_, err = e.progress.SetPage(ctx, stu, c.ID, 5, 5)
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.CoursesCompletedTotal))

	got, err := e.progress.Get(ctx, stu, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.CurrentPage)
	assert.True(t, got.IsCompleted)
}

func TestSetPage_DefaultsToCourseTotal(t *testing.T) {
	e := newEnv(t)
	stu := e.user(t, "ann", domain.RoleStudent)
	c := e.course(t, "Go", 4)

	v, err := e.progress.SetPage(context.Background(), stu, c.ID, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, v.TotalPages)
	assert.Equal(t, 25, v.ProgressPercent)
}

func TestSetPage_Bounds(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	stu := e.user(t, "ann", domain.RoleStudent)
	c := e.course(t, "Go", 5)

	cases := []struct {
		name        string
		page, total int
	}{
		{"zero page", 0, 5},
		{"past end", 6, 5},
		{"negative total", 1, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.progress.SetPage(ctx, stu, c.ID, tc.page, tc.total)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	p, err := e.store.Progress().Find(ctx, stu.ID, c.ID)
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = e.progress.SetPage(ctx, stu, utils.NewID(), 1, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddHour(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	stu := e.user(t, "ann", domain.RoleStudent)
	c := e.course(t, "Go", 3)

	v, err := e.progress.AddHour(ctx, stu, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, v.HoursSpent)
	assert.Equal(t, 1, v.CurrentPage)
	assert.Equal(t, 3, v.TotalPages)
	assert.Equal(t, 33, v.ProgressPercent)
	first := *v.LastAccess

	e.clock.Advance(time.Hour)
	v, err = e.progress.AddHour(ctx, stu, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, v.HoursSpent)
	assert.True(t, v.LastAccess.After(first))
	assert.Equal(t, 1, v.CurrentPage)

	_, err = e.progress.AddHour(ctx, stu, utils.NewID())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListAllActivities(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	stu := e.user(t, "ann", domain.RoleStudent)
	admin := e.user(t, "root", domain.RoleAdmin)
	c := e.course(t, "Go", 2)

	_, err := e.progress.SetPage(ctx, stu, c.ID, 2, 2)
	require.NoError(t, err)

	_, err = e.progress.ListAllActivities(ctx, stu)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	acts, err := e.progress.ListAllActivities(ctx, admin)
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, "ann", acts[0].UserName)
	assert.Equal(t, "Go", acts[0].CourseTitle)
	assert.Equal(t, 100, acts[0].ProgressPercent)
	assert.True(t, acts[0].IsCompleted)
}
