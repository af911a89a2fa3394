package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/icpcsp/compreg/internal/service"
)

// Err is the JSON body of every error response.
type Err struct {
	Err            error  `json:"-"`
	HTTPStatusCode int    `json:"-"`
	StatusText     string `json:"status"`
	ErrorText      string `json:"error,omitempty"`
}

func (e *Err) Error() string {
	if e.Err == nil {
		return e.StatusText
	}
	return e.Err.Error()
}

// RenderErr writes e and aborts the chain. Server errors are logged and their detail is hidden.
func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("path", ctx.FullPath()),
			zap.Error(e.Err),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

func newErr(status int, err error) *Err {
	e := &Err{
		Err:            err,
		HTTPStatusCode: status,
		StatusText:     http.StatusText(status),
	}
	if err != nil {
		e.ErrorText = err.Error()
	}
	return e
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, err)
}

func ErrWrongCredentials(err error) *Err {
	e := newErr(http.StatusUnauthorized, err)
	e.ErrorText = "wrong email or password"
	return e
}

func ErrUnauthorized(err error) *Err {
	return newErr(http.StatusUnauthorized, err)
}

func ErrPermissionDenied(err error) *Err {
	return newErr(http.StatusForbidden, err)
}

func ErrNotFound(resource, field string, value interface{}) *Err {
	return newErr(http.StatusNotFound, fmt.Errorf("%s with %s %v not found", resource, field, value))
}

func ErrConflict(err error) *Err {
	return newErr(http.StatusConflict, err)
}

func ErrInternalServerError(err error) *Err {
	e := newErr(http.StatusInternalServerError, err)
	e.ErrorText = ""
	return e
}

// FromServiceErr maps a service error to its HTTP response by kind.
// Errors without a kind are internal.
func FromServiceErr(err error) *Err {
	kind, ok := service.KindOf(err)
	if !ok {
		return ErrInternalServerError(err)
	}

	var se *service.ServiceError
	errors.As(err, &se)
	public := errors.New(se.Message)

	switch kind {
	case service.KindAuth:
		return ErrPermissionDenied(public)
	case service.KindNotFound:
		return newErr(http.StatusNotFound, public)
	case service.KindBadRequest:
		return ErrBadRequest(public)
	case service.KindConflict:
		return ErrConflict(public)
	default:
		return ErrInternalServerError(err)
	}
}
