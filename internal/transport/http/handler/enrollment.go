package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"e-course-api/internal/service"
	"e-course-api/internal/transport/http/ez"
)

type EnrollmentHandler struct {
	enroll *service.EnrollmentService
}

func NewEnrollmentHandler(s *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enroll: s}
}

func (h *EnrollmentHandler) MountAPI(e ez.EZ) {
	// 两个入口同一套规则
	h.mountEnroll(e, "/users/enroll/:courseId", "courseId")
	h.mountEnroll(e, "/courses/:id/enroll", "id")

	ez.RegisterAction(e, ez.Action[struct{}, gin.H]{
		Method:  http.MethodPost,
		Path:    "/courses/:id/unenroll",
		Auth:    true,
		Message: "Successfully unenrolled from course",
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			return gin.H{}, h.enroll.Unenroll(c.Request.Context(), ez.Actor(c), c.Param("id"))
		},
	})
}

func (h *EnrollmentHandler) mountEnroll(e ez.EZ, path, param string) {
	ez.RegisterAction(e, ez.Action[struct{}, *service.EnrollResult]{
		Method: http.MethodPost,
		Path:   path,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*service.EnrollResult, error) {
			return h.enroll.Enroll(c.Request.Context(), ez.Actor(c), c.Param(param))
		},
	})
}

func (h *EnrollmentHandler) Priority() int { return 30 }
