package xhttp

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/EasyAuctionBackend/pkg/errcode"
)

// Response 统一响应结构
type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

// OkJson 返回成功响应
func OkJson(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: errcode.CodeOK,
		Msg:  "success",
		Data: data,
	})
}

// Error 返回错误响应
// 业务错误 (*errcode.Err) 按其自带的 HTTP 状态与错误码返回,
// 其它错误一律按内部错误处理, 不向外暴露底层细节
func Error(c *gin.Context, err error) {
	if e, ok := errcode.AsErr(err); ok {
		c.Writer.Header().Set("X-GW-Error-Code", strconv.Itoa(e.Code))
		c.Writer.Header().Set("X-GW-Error-Message", e.Msg)
		c.JSON(e.HTTPStatus, Response{
			Code: e.Code,
			Msg:  e.Msg,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, Response{
		Code: errcode.CodeInternal,
		Msg:  "internal server error",
	})
}
