package apierr

import "fmt"

// Sentinels for errors.Is. They match any *Error with the same code,
// regardless of message.
var (
	ErrUnauthorized              = &Error{Code: Unauthorized}
	ErrInvalidResponse           = &Error{Code: InvalidResponse}
	ErrEmptyResponse             = &Error{Code: EmptyResponse}
	ErrUnknownCommand            = &Error{Code: UnknownCommand}
	ErrNoDataFound               = &Error{Code: NoDataFound}
	ErrRequestFailed             = &Error{Code: RequestFailed}
	ErrCannotMakeRequest         = &Error{Code: CannotMakeRequest}
	ErrForbidden                 = &Error{Code: Forbidden}
	ErrUniqueParamNotUnique      = &Error{Code: UniqueParamNotUnique}
	ErrAttachmentsNotSupported   = &Error{Code: AttachmentsNotSupportedWithMethod}
	ErrMalformedAttachmentList   = &Error{Code: MalformedAttachmentList}
	ErrAttachmentFileNotReadable = &Error{Code: AttachmentFileNotReadable}
)

// Error is the outcome of a failed call: a code from the taxonomy and the
// human-readable message that accompanied it.
type Error struct {
	Code    Code
	Message string
}

// New returns an *Error with the given code and message.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Newf is New with a formatted message.
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("premium: error #%d (%s)", int(e.Code), e.Code)
	}
	return fmt.Sprintf("premium: error #%d: %s", int(e.Code), e.Message)
}

// Is implements errors.Is by comparing codes.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}
