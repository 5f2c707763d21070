package utils

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// ErrKind 业务错误类别
type ErrKind int

const (
	KindValidation ErrKind = iota + 1
	KindNotFound
	KindConflict
	KindPersistence
)

// Error 带类别的业务错误
type Error struct {
	Kind ErrKind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Err: errors.New(msg)}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Err: errors.New(msg)}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Err: errors.New(msg)}
}

// Persistence 包装底层数据库错误
func Persistence(err error, msg string) *Error {
	return &Error{Kind: KindPersistence, Err: errors.Wrap(err, msg)}
}

// Wrapf 追加上下文，保留原错误的类别
func Wrapf(err error, format string, args ...interface{}) *Error {
	kind := KindPersistence
	var e *Error
	if stderrors.As(err, &e) {
		kind = e.Kind
	}
	return &Error{Kind: kind, Err: errors.Wrapf(err, format, args...)}
}

// IsKind 判断错误是否属于某个类别
func IsKind(err error, kind ErrKind) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
