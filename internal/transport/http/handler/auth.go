package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"e-course-api/internal/service"
	"e-course-api/internal/transport/http/ez"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(a *service.AuthService) *AuthHandler { return &AuthHandler{auth: a} }

type loginIn struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// MountPublic 无需登录：注册 / 登录
func (h *AuthHandler) MountPublic(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[service.RegisterInput, *service.Session]{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.RegisterInput) (*service.Session, error) {
			return h.auth.Register(c.Request.Context(), *in)
		},
	})
	ez.RegisterAction(e, ez.Action[loginIn, *service.Session]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (*service.Session, error) {
			return h.auth.Login(c.Request.Context(), in.Email, in.Password)
		},
	})
}

func (h *AuthHandler) MountAPI(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[struct{}, *service.MeView]{
		Method: http.MethodGet,
		Path:   "/auth/me",
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*service.MeView, error) {
			return h.auth.Me(c.Request.Context(), ez.Actor(c))
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, any]{
		Method:  http.MethodPost,
		Path:    "/auth/logout",
		Auth:    true,
		Message: "Logged out",
		Handler: func(c *gin.Context, _ *struct{}) (any, error) {
			return nil, h.auth.Logout(c.Request.Context(), ez.Claims(c))
		},
	})
}

func (h *AuthHandler) Priority() int { return 10 }
