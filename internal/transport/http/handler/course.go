package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"e-course-api/internal/domain"
	"e-course-api/internal/service"
	"e-course-api/internal/transport/http/ez"
)

type CourseHandler struct {
	catalog *service.CatalogService
}

func NewCourseHandler(s *service.CatalogService) *CourseHandler { return &CourseHandler{catalog: s} }

func (h *CourseHandler) MountAPI(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[struct{}, []domain.Course]{
		Method: http.MethodGet,
		Path:   "/courses",
		Auth:   true,
		Count:  func(cs []domain.Course) int { return len(cs) },
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Course, error) {
			return h.catalog.List(c.Request.Context())
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, *domain.Course]{
		Method: http.MethodGet,
		Path:   "/courses/:id",
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Course, error) {
			return h.catalog.Get(c.Request.Context(), c.Param("id"))
		},
	})
	ez.RegisterAction(e, ez.Action[service.CourseInput, *domain.Course]{
		Method: http.MethodPost,
		Path:   "/courses",
		Binder: ez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.CourseInput) (*domain.Course, error) {
			return h.catalog.Create(c.Request.Context(), ez.Actor(c), *in)
		},
	})
	ez.RegisterAction(e, ez.Action[service.CourseInput, *domain.Course]{
		Method: http.MethodPut,
		Path:   "/courses/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *service.CourseInput) (*domain.Course, error) {
			return h.catalog.Update(c.Request.Context(), ez.Actor(c), c.Param("id"), *in)
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, gin.H]{
		Method:  http.MethodDelete,
		Path:    "/courses/:id",
		Auth:    true,
		Message: "Course deleted",
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			return gin.H{}, h.catalog.Delete(c.Request.Context(), ez.Actor(c), c.Param("id"))
		},
	})
}

func (h *CourseHandler) Priority() int { return 20 }
