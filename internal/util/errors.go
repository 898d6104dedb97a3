package util

import (
	"errors"
	"fmt"
)

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrGroupNotFound    = errors.New("group not found")
	ErrSectionNotFound  = errors.New("section not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrAttemptNotFound  = errors.New("attempt not found")

	ErrEventNameTaken    = errors.New("an event with that name already exists")
	ErrGroupNameTaken    = errors.New("a group with that name already exists in the event")
	ErrSectionNameTaken  = errors.New("a section with that name already exists in the event")
	ErrQuestionTextTaken = errors.New("a question with that text already exists in the section")
	ErrNationalIDTaken   = errors.New("a user with that national ID already exists")

	ErrGroupNotOpen           = errors.New("group is closed or has not started yet")
	ErrAttemptAlreadyFinished = errors.New("attempt is already finished")
	ErrAttemptMismatch        = errors.New("session token does not match the requested attempt")
)

// ValidationError marks input the caller can fix; controllers answer 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validation(msg string) error {
	return &ValidationError{Msg: msg}
}

func Validationf(format string, a ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, a...)}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
