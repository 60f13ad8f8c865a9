package serializer

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/helioworks/artvault/internal/pkg/apperr"
)

// Response
type Response struct {
	Code  int         `json:"code"`
	Data  interface{} `json:"data,omitempty"`
	Msg   string      `json:"msg"`
	Error string      `json:"error,omitempty"`
}

// Err
func Err(errCode int, msg string, err error) Response {
	res := Response{
		Code: errCode,
		Msg:  msg,
	}
	// development mode, show error detail
	if err != nil && gin.Mode() != gin.ReleaseMode {
		res.Error = fmt.Sprintf("%+v", err)
	}
	return res
}

// DBErr
func DBErr(msg string, err error) Response {
	if msg == "" {
		msg = "database error"
	}
	return Err(http.StatusInternalServerError, msg, err)
}

// ParamErr
func ParamErr(msg string, err error) Response {
	if msg == "" {
		msg = "parameter error"
	}
	return Err(http.StatusBadRequest, msg, err)
}

// AuthErr
func AuthErr(msg string) Response {
	if msg == "" {
		msg = "authentication error"
	}
	return Err(http.StatusUnauthorized, msg, nil)
}

// FromErr maps service errors onto HTTP status codes.
func FromErr(err error) Response {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return Err(http.StatusNotFound, err.Error(), err)
	case errors.Is(err, apperr.ErrConflict):
		return Err(http.StatusConflict, err.Error(), err)
	case errors.Is(err, apperr.ErrInvalidInput):
		return Err(http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, apperr.ErrExternal):
		return Err(http.StatusBadGateway, err.Error(), err)
	default:
		return Err(http.StatusInternalServerError, "internal error", err)
	}
}
