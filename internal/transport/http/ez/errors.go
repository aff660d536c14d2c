package ez

import (
	"errors"
	"net/http"

	"e-course-api/internal/domain"
)

// AErr 传输层自己产生的错误（绑定失败、缺 token 等），业务错误走 domain.Error
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: http.StatusForbidden, Msg: msg} }

// StatusOf 错误 -> HTTP 状态码 + 对外文案；500 不透出内部错误
func StatusOf(err error) (int, string) {
	var ae *AErr
	if errors.As(err, &ae) {
		return ae.Code, ae.Error()
	}
	var de *domain.Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError, ""
	}
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrAlreadyEnrolled),
		errors.Is(err, domain.ErrNotEnrolled):
		return http.StatusBadRequest, de.Error()
	case errors.Is(err, domain.ErrCredential):
		return http.StatusUnauthorized, de.Error()
	case errors.Is(err, domain.ErrRole), errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, de.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, de.Error()
	}
	return http.StatusInternalServerError, ""
}
