package response

import (
	"net/http"

	appErr "dice-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

type Body struct {
	Code    int         `json:"code"`
	ErrCode string      `json:"errCode,omitempty"`
	Data    interface{} `json:"data"`
	Msg     string      `json:"msg"`
}

func Success(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data, "")
}

func SuccessWithMsg(c *gin.Context, data interface{}, msg string) {
	JSON(c, http.StatusOK, data, msg)
}

func Error(c *gin.Context, status int, msg string) {
	JSON(c, status, gin.H{}, msg)
}

// FromError writes err with the status matching its kind.
func FromError(c *gin.Context, err error) {
	status := StatusFor(err)
	c.JSON(status, Body{
		Code:    status,
		ErrCode: appErr.CodeOf(err),
		Data:    gin.H{},
		Msg:     err.Error(),
	})
}

func StatusFor(err error) int {
	switch appErr.KindOf(err) {
	case appErr.KindValidation:
		return http.StatusBadRequest
	case appErr.KindConflict:
		return http.StatusConflict
	case appErr.KindInsufficientFunds:
		return http.StatusPaymentRequired
	case appErr.KindNotFound:
		return http.StatusNotFound
	case appErr.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func JSON(c *gin.Context, status int, data interface{}, msg string) {
	if data == nil {
		data = gin.H{}
	}
	c.JSON(status, Body{
		Code: status,
		Data: data,
		Msg:  msg,
	})
}
