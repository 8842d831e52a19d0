package apperr

import (
	"errors"
	"log"
	"net/http"

	"reveo/utils"
)

// Kind classifies a business-rule rejection so handlers can map it to a
// status code without inspecting message text.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindBadRequest
	KindConflict
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func BadRequest(msg string) error {
	return &Error{Kind: KindBadRequest, Message: msg}
}

func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

func IsConflict(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindConflict
}

func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindNotFound
}

// Write maps a business error to its HTTP status and a {"message": ...}
// body. Anything unclassified is an infrastructure failure and becomes a
// generic 500.
func Write(w http.ResponseWriter, err error) {
	var e *Error
	if !errors.As(err, &e) {
		log.Printf("[apperr] internal error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	status := http.StatusBadRequest
	switch e.Kind {
	case KindNotFound:
		status = http.StatusNotFound
	case KindConflict:
		status = http.StatusConflict
	}
	utils.RespondWithError(w, status, e.Message)
}
