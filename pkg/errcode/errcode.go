package errcode

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Err 业务错误
// Code 为平台内部错误码, HTTPStatus 决定响应的 HTTP 状态
type Err struct {
	Code       int    `json:"code"`
	Msg        string `json:"msg"`
	HTTPStatus int    `json:"-"`
}

func (e *Err) Error() string {
	return fmt.Sprintf("code: %d, msg: %s", e.Code, e.Msg)
}

// NewErr 创建指定错误码的业务错误
func NewErr(code int, msg string, httpStatus int) *Err {
	return &Err{Code: code, Msg: msg, HTTPStatus: httpStatus}
}

// NewCustomErr 创建带自定义消息的通用业务错误
func NewCustomErr(msg string) *Err {
	return &Err{Code: CodeCustom, Msg: msg, HTTPStatus: http.StatusBadRequest}
}

// NewForbiddenErr 创建 403 错误, msg 必须说明被拒绝的原因
func NewForbiddenErr(msg string) *Err {
	return &Err{Code: CodeForbidden, Msg: msg, HTTPStatus: http.StatusForbidden}
}

// NewInvalidRequestErr 创建 400 错误, 用于业务规则层面的非法请求
func NewInvalidRequestErr(msg string) *Err {
	return &Err{Code: CodeInvalidRequest, Msg: msg, HTTPStatus: http.StatusBadRequest}
}

// 错误码定义
const (
	CodeOK             = 200
	CodeCustom         = 10000 // 通用业务错误
	CodeInvalidParams  = 10001 // 参数非法
	CodeInvalidRequest = 10002 // 业务规则拒绝的请求
	CodeNotFound       = 10404 // 资源不存在
	CodeForbidden      = 10403 // 无权限
	CodeConflict       = 10409 // 并发冲突, 重试耗尽
	CodeInternal       = 10500 // 内部错误
)

var (
	ErrInvalidParams = NewErr(CodeInvalidParams, "invalid params", http.StatusBadRequest)
	ErrNotFound      = NewErr(CodeNotFound, "resource not found", http.StatusNotFound)
	ErrUnexpected    = NewErr(CodeInternal, "internal server error", http.StatusInternalServerError)
	// ErrTooManyConflicts 占位事务冲突重试耗尽的瞬态错误, 与业务错误区分开
	ErrTooManyConflicts = NewErr(CodeConflict, "system busy, please retry", http.StatusServiceUnavailable)
)

// AsErr 尝试把任意 error 还原为 *Err, 链上被 Wrap 过也能还原
func AsErr(err error) (*Err, bool) {
	var e *Err
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
