package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"e-course-api/internal/domain"
)

func TestNormalizeMySQLDSN(t *testing.T) {
	cases := []struct {
		name, in, user, pass, want string
	}{
		{
			name: "driver format untouched",
			in:   "root:pw@tcp(127.0.0.1:3306)/app?parseTime=true",
			want: "root:pw@tcp(127.0.0.1:3306)/app?parseTime=true",
		},
		{
			name: "url with defaults",
			in:   "mysql://root:pw@127.0.0.1:3306/app",
			want: "root:pw@tcp(127.0.0.1:3306)/app?charset=utf8mb4&parseTime=true",
		},
		{
			name: "jdbc params and override",
			in:   "jdbc:mysql://127.0.0.1:3306/app?useSSL=false&characterEncoding=utf8&useUnicode=true",
			user: "svc", pass: "x",
			want: "svc:x@tcp(127.0.0.1:3306)/app?charset=utf8&parseTime=true&tls=false",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeMySQLDSN(tc.in, tc.user, tc.pass))
		})
	}
}

func TestNewGorm_UnsupportedDriver(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "oracle"})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestNewGorm_SQLiteMigrate(t *testing.T) {
	db, err := NewGorm(Opts{
		Driver:       "sqlite",
		DSN:          "file:dbtest?mode=memory&cache=shared",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	m := db.Migrator()
	for _, tbl := range []any{&domain.User{}, &domain.Course{}, &domain.Enrollment{}, &domain.Progress{}} {
		assert.True(t, m.HasTable(tbl))
	}
}
