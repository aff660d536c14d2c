package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"e-course-api/internal/domain"
	"e-course-api/pkg/utils"
)

func TestEnroll_SymmetricMembership(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	stu := e.user(t, "ann", domain.RoleStudent)
	c := e.course(t, "Go", 5)

	res, err := e.enroll.Enroll(ctx, stu, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{stu.ID}, res.Course.EnrolledStudents)
	assert.Equal(t, []string{c.ID}, res.User.EnrolledCourses)

	// 从另一侧读回也一致
	got, err := e.catalog.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Contains(t, got.EnrolledStudents, stu.ID)
	me, err := e.auth.Me(ctx, stu)
	require.NoError(t, err)
	assert.Contains(t, me.EnrolledCourses, c.ID)
	require.Len(t, me.Courses, 1)
	assert.Equal(t, "Go", me.Courses[0].Title)
}

func TestEnroll_NormalizesCourseID(t *testing.T) {
	e := newEnv(t)
	stu := e.user(t, "ann", domain.RoleStudent)
	c := e.course(t, "Go", 1)

	upper := " " + strings.ToUpper(c.ID) + " "
	_, err := e.enroll.Enroll(context.Background(), stu, upper)
	require.NoError(t, err)

	_, err = e.enroll.Enroll(context.Background(), stu, c.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyEnrolled)
}

func TestEnroll_TwiceFailsAndStateUnchanged(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	stu := e.user(t, "ann", domain.RoleStudent)
	c := e.course(t, "Go", 5)

	_, err := e.enroll.Enroll(ctx, stu, c.ID)
	require.NoError(t, err)

	_, err = e.enroll.Enroll(ctx, stu, c.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyEnrolled)
	assert.EqualError(t, err, "Student already enrolled in this course")

	got, err := e.catalog.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{stu.ID}, got.EnrolledStudents)
	ids, err := e.store.Enrollments().CourseIDsOf(ctx, stu.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID}, ids)
}

func TestEnroll_NonStudent(t *testing.T) {
	e := newEnv(t)
	admin := e.user(t, "root", domain.RoleAdmin)
	c := e.course(t, "Go", 5)

	_, err := e.enroll.Enroll(context.Background(), admin, c.ID)
	assert.ErrorIs(t, err, domain.ErrRole)
}

func TestEnroll_RoleComesFromStoredUser(t *testing.T) {
	e := newEnv(t)
	admin := e.user(t, "root", domain.RoleAdmin)
	c := e.course(t, "Go", 5)

	// token 里声称是 student 也不行
	_, err := e.enroll.Enroll(context.Background(), domain.Actor{ID: admin.ID, Role: domain.RoleStudent}, c.ID)
	assert.ErrorIs(t, err, domain.ErrRole)
}

func TestEnroll_NotFound(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	stu := e.user(t, "ann", domain.RoleStudent)

	_, err := e.enroll.Enroll(ctx, stu, utils.NewID())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	c := e.course(t, "Go", 5)
	_, err = e.enroll.Enroll(ctx, domain.Actor{ID: utils.NewID(), Role: domain.RoleStudent}, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.enroll.Enroll(ctx, stu, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUnenroll(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	stu := e.user(t, "ann", domain.RoleStudent)
	c := e.course(t, "Go", 5)

	err := e.enroll.Unenroll(ctx, stu, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotEnrolled)

	_, err = e.enroll.Enroll(ctx, stu, c.ID)
	require.NoError(t, err)
	require.NoError(t, e.enroll.Unenroll(ctx, stu, c.ID))

	got, err := e.catalog.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, got.EnrolledStudents)
	ids, err := e.store.Enrollments().CourseIDsOf(ctx, stu.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	assert.ErrorIs(t, e.enroll.Unenroll(ctx, stu, c.ID), domain.ErrNotEnrolled)
	assert.ErrorIs(t, e.enroll.Unenroll(ctx, stu, utils.NewID()), domain.ErrNotFound)
}

func TestCoursesOf_SkipsDeletedCourses(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	stu := e.user(t, "ann", domain.RoleStudent)
	admin := e.user(t, "root", domain.RoleAdmin)
	keep := e.course(t, "keep", 1)
	gone := e.course(t, "gone", 1)

	_, err := e.enroll.Enroll(ctx, stu, keep.ID)
	require.NoError(t, err)
	_, err = e.enroll.Enroll(ctx, stu, gone.ID)
	require.NoError(t, err)
	require.NoError(t, e.catalog.Delete(ctx, admin, gone.ID))

	cs, err := e.enroll.CoursesOf(ctx, stu.ID)
	require.NoError(t, err)
	require.Len(t, cs, 1)
	assert.Equal(t, keep.ID, cs[0].ID)

	// 删除课程不级联，选课记录仍在
	ids, err := e.store.Enrollments().CourseIDsOf(ctx, stu.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}
