package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrFetchFailed
	ErrValidation
	ErrMutationFailed
	ErrPartialMutation
	ErrConfirmRequired
	ErrBusy
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:         "success",
	ErrInternal:        "error internal",
	ErrNotFound:        "data not found",
	ErrInvalidRequest:  "invalid request",
	ErrUnauthorize:     "unauthorize request",
	ErrFetchFailed:     "failed to load records",
	ErrValidation:      "invalid field value",
	ErrMutationFailed:  "store rejected the change",
	ErrPartialMutation: "change partially applied",
	ErrConfirmRequired: "delete requires confirmation",
	ErrBusy:            "a request is already in flight",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:         http.StatusOK,
	ErrInternal:        http.StatusInternalServerError,
	ErrNotFound:        http.StatusBadRequest,
	ErrInvalidRequest:  http.StatusBadRequest,
	ErrUnauthorize:     http.StatusUnauthorized,
	ErrFetchFailed:     http.StatusBadGateway,
	ErrValidation:      http.StatusBadRequest,
	ErrMutationFailed:  http.StatusBadGateway,
	ErrPartialMutation: http.StatusBadGateway,
	ErrConfirmRequired: http.StatusBadRequest,
	ErrBusy:            http.StatusConflict,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:         "0000",
	ErrInternal:        "0001",
	ErrNotFound:        "0002",
	ErrInvalidRequest:  "0003",
	ErrUnauthorize:     "0004",
	ErrFetchFailed:     "0005",
	ErrValidation:      "0006",
	ErrMutationFailed:  "0007",
	ErrPartialMutation: "0008",
	ErrConfirmRequired: "0009",
	ErrBusy:            "0010",
}
