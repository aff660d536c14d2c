package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"e-course-api/internal/core/auth"
	"e-course-api/internal/core/cache"
	"e-course-api/internal/core/database/dbtest"
	"e-course-api/internal/domain"
	"e-course-api/internal/repo"
	"e-course-api/pkg/utils"
)

type env struct {
	store    *repo.Store
	enroll   *EnrollmentService
	progress *ProgressService
	catalog  *CatalogService
	auth     *AuthService
	users    *UserService
	jwt      *auth.JWTer
	deny     *cache.MemoryDenylist
	clock    *fakeClock
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newEnv(t *testing.T) *env {
	t.Helper()
	store := repo.NewStore(dbtest.New(t))
	l := zap.NewNop()
	clk := &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	j := &auth.JWTer{Secret: []byte("test"), Issuer: "test", TTL: time.Hour}
	deny := cache.NewMemory()

	e := &env{
		store:    store,
		enroll:   NewEnrollmentService(store, l),
		progress: NewProgressService(store, l),
		catalog:  NewCatalogService(store, l),
		users:    NewUserService(store),
		jwt:      j,
		deny:     deny,
		clock:    clk,
	}
	e.enroll.now = clk.Now
	e.progress.now = clk.Now
	e.auth = NewAuthService(store, j, deny, e.enroll, l, true)
	return e
}

func (e *env) user(t *testing.T, name, role string) domain.Actor {
	t.Helper()
	u := &domain.User{ID: utils.NewID(), Email: name + "@example.com", Name: name, PasswordHash: "x", Role: role}
	require.NoError(t, e.store.Users().Create(context.Background(), u))
	return domain.Actor{ID: u.ID, Role: u.Role}
}

func (e *env) course(t *testing.T, title string, pages int) *domain.Course {
	t.Helper()
	c := &domain.Course{ID: utils.NewID(), Title: title, Description: "d", Instructor: "i", Duration: 2, TotalPages: pages}
	c.SyncTotalPages()
	require.NoError(t, e.store.Courses().Create(context.Background(), c))
	return c
}

func strp(s string) *string { return &s }
