package error

import (
	"errors"
	"fmt"
	"net/http"
)

type Error interface {
	error
	ErrCode() int
}

// Err is a failed remote operation. Code is the HTTP status, or 0 when the
// request never got a response.
type Err struct {
	Op     string
	Code   int
	Detail string
	Err    error
}

func New(op string, code int, err error) *Err {
	return &Err{Op: op, Code: code, Err: err}
}

func (err *Err) ErrCode() int {
	return err.Code
}

func (err *Err) Error() string {
	if err.Err == nil {
		return fmt.Sprintf("%s: status %d", err.Op, err.Code)
	}
	return fmt.Sprintf("%s: %v", err.Op, err.Err)
}

func (err *Err) Unwrap() error {
	return err.Err
}

// CodeOf returns the status code carried by err, 0 if there is none.
func CodeOf(err error) int {
	var e Error
	if errors.As(err, &e) {
		return e.ErrCode()
	}
	return 0
}

func IsNotFound(err error) bool {
	return CodeOf(err) == http.StatusNotFound
}
