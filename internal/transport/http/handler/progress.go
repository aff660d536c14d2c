package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"e-course-api/internal/domain"
	"e-course-api/internal/service"
	"e-course-api/internal/transport/http/ez"
)

type ProgressHandler struct {
	progress *service.ProgressService
}

func NewProgressHandler(s *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progress: s}
}

// totalPages 不传时取课程页数
type pageIn struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}

func (h *ProgressHandler) MountAPI(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[struct{}, domain.ProgressView]{
		Method: http.MethodGet,
		Path:   "/courses/progress/:courseId",
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (domain.ProgressView, error) {
			return h.progress.Get(c.Request.Context(), ez.Actor(c), c.Param("courseId"))
		},
	})
	ez.RegisterAction(e, ez.Action[pageIn, domain.ProgressView]{
		Method: http.MethodPost,
		Path:   "/courses/progress/:courseId/page",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *pageIn) (domain.ProgressView, error) {
			return h.progress.SetPage(c.Request.Context(), ez.Actor(c), c.Param("courseId"), in.Page, in.TotalPages)
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, domain.ProgressView]{
		Method: http.MethodPost,
		Path:   "/courses/progress/:courseId/add-hour",
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (domain.ProgressView, error) {
			return h.progress.AddHour(c.Request.Context(), ez.Actor(c), c.Param("courseId"))
		},
	})
	ez.RegisterAction(e, h.activities("/courses/admin/user-activities"))
}

// activities API 与管理端共用
func (h *ProgressHandler) activities(path string) ez.Action[struct{}, []domain.Activity] {
	return ez.Action[struct{}, []domain.Activity]{
		Method: http.MethodGet,
		Path:   path,
		Auth:   true,
		Count:  func(as []domain.Activity) int { return len(as) },
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Activity, error) {
			return h.progress.ListAllActivities(c.Request.Context(), ez.Actor(c))
		},
	}
}

func (h *ProgressHandler) MountAdmin(e ez.EZ) {
	ez.RegisterAction(e, h.activities("/user-activities"))
}

func (h *ProgressHandler) Priority() int { return 40 }
