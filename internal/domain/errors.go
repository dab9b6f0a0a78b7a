package domain

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for the event API. Callers classify failures with
// errors.Is and map them onto HTTP status codes at the boundary.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrMissingField     = errors.New("missing required field")
	ErrInvalidEnum      = errors.New("invalid enum value")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrPersistence      = errors.New("persistence error")
)

// Error 携带错误类别和面向调用方的消息
type Error struct {
	Kind    error // one of the sentinels above
	Message string
	Err     error // underlying cause, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError 创建指定类别的错误
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapPersistence 把数据库层错误归类为 Persistence
func WrapPersistence(message string, err error) *Error {
	return &Error{Kind: ErrPersistence, Message: message, Err: err}
}

// UserMessage 返回适合放进响应 message 字段的文本
// 非 *Error 的错误按 Persistence 处理，不向客户端泄露内部细节。
func UserMessage(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}
