package errors

import (
	"strings"

	"github.com/rescueops/admin-console/constant"
)

type CustomError struct {
	errType constant.ErrorType
	details []string
}

func (c CustomError) Error() string {
	msg := constant.ErrorTypeMessage[c.errType]
	if len(c.details) > 0 {
		msg += ": " + strings.Join(c.details, "; ")
	}
	return msg
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func (c CustomError) Type() constant.ErrorType {
	return c.errType
}

// Details returns the per-step messages attached to the error. A
// PartialMutationFailure carries one entry per sub-step so each can be
// shown independently.
func (c CustomError) Details() []string {
	return c.details
}

func SetCustomError(errorType constant.ErrorType, details ...string) CustomError {
	return CustomError{
		errType: errorType,
		details: details,
	}
}

// TypeOf reports the taxonomy type of err, or ErrInternal if err did not
// originate here.
func TypeOf(err error) constant.ErrorType {
	if ce, ok := err.(CustomError); ok {
		return ce.Type()
	}
	return constant.ErrInternal
}
