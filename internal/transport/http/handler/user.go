package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"e-course-api/internal/domain"
	"e-course-api/internal/service"
	"e-course-api/internal/transport/http/ez"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(s *service.UserService) *UserHandler { return &UserHandler{users: s} }

type listQ struct {
	Offset int `form:"offset,default=0"`
	Limit  int `form:"limit,default=20"`
}

func (h *UserHandler) MountAPI(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[listQ, []domain.User]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Auth:   true,
		Count:  func(us []domain.User) int { return len(us) },
		Handler: func(c *gin.Context, in *listQ) ([]domain.User, error) {
			page, err := h.users.List(c.Request.Context(), ez.Actor(c), in.Offset, in.Limit)
			if err != nil {
				return nil, err
			}
			return page.Items, nil
		},
	})
}

// MountAdmin 管理端返回带 total 的分页结构
func (h *UserHandler) MountAdmin(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[listQ, *service.UserPage]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Auth:   true,
		Roles:  []string{domain.RoleAdmin},
		Handler: func(c *gin.Context, in *listQ) (*service.UserPage, error) {
			return h.users.List(c.Request.Context(), ez.Actor(c), in.Offset, in.Limit)
		},
	})
}

func (h *UserHandler) Priority() int { return 50 }
