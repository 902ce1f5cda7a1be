package domain

import "errors"

// 错误分类：handler 层按分类映射响应码
var (
	ErrValidation      = errors.New("validation error")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)

// ErrDuplicate repo 层唯一约束冲突，由 service 翻译成具体冲突
var ErrDuplicate = errors.New("duplicate row")

// Error 具体错误，Unwrap 到分类
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

func newErr(kind error, msg string) *Error { return &Error{Kind: kind, Msg: msg} }

// Validation 带细节的校验错误
func Validation(msg string) error { return newErr(ErrValidation, msg) }

var (
	ErrInvalidToken       = newErr(ErrUnauthenticated, "could not validate credentials")
	ErrInvalidCredentials = newErr(ErrUnauthenticated, "incorrect email or password")
	ErrInvalidAdminLogin  = newErr(ErrUnauthenticated, "invalid admin credentials")
	ErrAnonymousDisabled  = newErr(ErrUnauthenticated, "anonymous interactions are disabled")

	ErrInactiveAccount = newErr(ErrForbidden, "inactive user")
	ErrAdminRequired   = newErr(ErrForbidden, "admin access required")

	ErrUserNotFound        = newErr(ErrNotFound, "user not found")
	ErrContentNotFound     = newErr(ErrNotFound, "content not found")
	ErrCollectionNotFound  = newErr(ErrNotFound, "collection not found")
	ErrItemNotInCollection = newErr(ErrNotFound, "item not in collection")

	ErrEmailTaken          = newErr(ErrConflict, "email already registered")
	ErrAlreadyLiked        = newErr(ErrConflict, "already liked")
	ErrAlreadyRated        = newErr(ErrConflict, "already rated")
	ErrAlreadyInCollection = newErr(ErrConflict, "item already in collection")

	ErrInvalidScore   = newErr(ErrValidation, "rating must be between 1 and 5")
	ErrUnknownAddress = newErr(ErrValidation, "cannot determine client address")
)
