package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"e-course-api/internal/core/auth"
	"e-course-api/internal/core/cache"
	"e-course-api/internal/transport/http/ez"
)

func init() { gin.SetMode(gin.TestMode) }

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyRequestID)) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	rid := w.Header().Get(KeyRequestID)
	assert.NotEmpty(t, rid)
	assert.Equal(t, rid, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(KeyRequestID, "abc")
	w = serve(r, req)
	assert.Equal(t, "abc", w.Header().Get(KeyRequestID))
}

func TestAuthJWT(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("k"), Issuer: "test", TTL: time.Hour}
	deny := cache.NewMemory()

	r := gin.New()
	r.GET("/any", AuthJWT(j, deny, ""), func(c *gin.Context) {
		c.String(http.StatusOK, ez.Actor(c).ID+"/"+ez.Actor(c).Role)
	})
	r.GET("/admin", AuthJWT(j, deny, "admin"), func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(path, tok string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
		return serve(r, req)
	}

	assert.Equal(t, http.StatusUnauthorized, call("/any", "").Code)
	assert.Equal(t, http.StatusUnauthorized, call("/any", "garbage").Code)

	tok, err := j.Issue("u1", "student")
	require.NoError(t, err)
	w := call("/any", tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1/student", w.Body.String())

	assert.Equal(t, http.StatusForbidden, call("/admin", tok).Code)

	claims, err := j.Parse(tok)
	require.NoError(t, err)
	require.NoError(t, deny.Revoke(context.Background(), claims.ID, time.Hour))
	w = call("/any", tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token has been revoked")
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitPerIP(0.001, 1))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestMaxBodyBytes(t *testing.T) {
	r := gin.New()
	r.Use(MaxBodyBytes(8))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 64))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zap.NewNop()))
	r.GET("/", func(c *gin.Context) { panic("boom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Server Error"}`, w.Body.String())
}

func TestMetricsUnmatched(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/metrics", MetricsHandler())

	serve(r, httptest.NewRequest(http.MethodGet, "/nope", nil))
	w := serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `route="unmatched"`)
}
