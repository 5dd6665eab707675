package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CodeSuccess       = 0
	CodeParamError    = 400
	CodeUnauthorized  = 401
	CodeForbidden     = 403
	CodeNotFound      = 404
	CodeServerError   = 500
	CodeBusinessError = 1000
)

const (
	CodeInsufficientFunds   = 1001
	CodeNotOwner            = 1002
	CodeAlreadyTraining     = 1003
	CodeAlreadyCompleted    = 1004
	CodeNotReady            = 1005
	CodePackExpired         = 1006
	CodeInvalidSelection    = 1007
	CodeMaxLevel            = 1008
	CodeGroupSizeInvalid    = 1009
	CodeIdolUnavailable     = 1010
	CodeSongNotReady        = 1011
	CodeRequirementsNotMet  = 1012
	CodeDuplicateRequest    = 1013
	CodeCredentialsInvalid  = 1014
	CodeEmailTaken          = 1015
)

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

func ParamError(c *gin.Context, message string) {
	Error(c, CodeParamError, message)
}

func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, Response{
		Code:    CodeUnauthorized,
		Message: message,
	})
}

func NotFound(c *gin.Context, message string) {
	Error(c, CodeNotFound, message)
}

func ServerError(c *gin.Context, message string) {
	Error(c, CodeServerError, message)
}

func BusinessError(c *gin.Context, code int, message string) {
	Error(c, code, message)
}
