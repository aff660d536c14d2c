package ez

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"e-course-api/internal/core/auth"
	"e-course-api/internal/domain"
	resp "e-course-api/internal/transport/http/response"
)

// 鉴权中间件写入 gin.Context 的 key
const (
	CtxUserID = "userId"
	CtxRole   = "role"
	CtxClaims = "claims"
)

type EZ struct {
	g *gin.RouterGroup
	l *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) EZ { return EZ{g: g, l: l} }

// Group 子分组，沿用同一个 logger
func (e EZ) Group(path string, mw ...gin.HandlerFunc) EZ {
	return EZ{g: e.g.Group(path, mw...), l: e.l}
}

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string      // "GET" | "POST" | "PUT" | "DELETE"
	Path    string      // 例："/auth/login"、"/courses/:id/enroll"
	Binder  Binder      // 绑定方式
	Auth    bool        // 是否要求登录（检查 userId）
	Roles   []string    // 限定角色（可选）
	Status  int         // 成功状态码，默认 200
	Message string      // 成功时附带的提示
	Count   func(O) int // 列表接口返回 count
	Handler func(c *gin.Context, in *I) (O, error)
}

// Actor 当前登录用户（来自 JWT）
func Actor(c *gin.Context) domain.Actor {
	return domain.Actor{ID: c.GetString(CtxUserID), Role: c.GetString(CtxRole)}
}

// Claims 当前 token 的 claims，未登录为 nil
func Claims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(CtxClaims); ok {
		if cl, ok := v.(*auth.Claims); ok {
			return cl
		}
	}
	return nil
}

// Fail 统一错误出口
func (e EZ) Fail(c *gin.Context, err error) {
	code, msg := StatusOf(err)
	if code >= http.StatusInternalServerError {
		e.l.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("user_id", c.GetString(CtxUserID)),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(code, resp.Error(code, msg))
}

// RegisterAction 在当前 EZ 下注册动作接口
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		// 1) 鉴权/角色
		if a.Auth {
			if c.GetString(CtxUserID) == "" {
				e.Fail(c, Unauthorized(""))
				return
			}
			if len(a.Roles) > 0 && !slices.Contains(a.Roles, c.GetString(CtxRole)) {
				e.Fail(c, Forbidden("User role "+c.GetString(CtxRole)+" is not authorized to access this route"))
				return
			}
		}

		// 2) 绑定入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			// 允许空 body
			if c.Request.ContentLength != 0 {
				bindErr = c.ShouldBindJSON(&in)
			}
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone: 不绑定
		}
		if bindErr != nil {
			e.Fail(c, BadRequest(bindMessage(bindErr)))
			return
		}

		// 3) 执行
		out, err := a.Handler(c, &in)
		if err != nil {
			e.Fail(c, err)
			return
		}

		status := a.Status
		if status == 0 {
			status = http.StatusOK
		}
		switch {
		case a.Count != nil:
			c.JSON(status, resp.List(out, a.Count(out)))
		case a.Message != "":
			c.JSON(status, resp.Msg(a.Message, out))
		default:
			c.JSON(status, resp.OK(out))
		}
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}

func bindMessage(err error) string {
	if strings.Contains(err.Error(), "http: request body too large") {
		return "Request body too large"
	}
	return err.Error()
}
