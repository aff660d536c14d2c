package domain

import (
	"errors"
	"fmt"
)

// 业务错误种类，传输层按种类映射 HTTP 状态码
var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("not found")
	ErrRole            = errors.New("role not allowed")
	ErrForbidden       = errors.New("forbidden")
	ErrAlreadyEnrolled = errors.New("already enrolled")
	ErrNotEnrolled     = errors.New("not enrolled")
	ErrCredential      = errors.New("invalid credentials")
)

// Error 携带给客户端看的消息；errors.Is 命中 Kind
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error { return e.Kind }

func Errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
