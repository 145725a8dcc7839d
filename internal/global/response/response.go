package response

import (
	"fmt"
	"net/http"

	"activity-signup/config"
	"activity-signup/internal/global/logger"
	"activity-signup/internal/global/sentry"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
)

type ResponseBody struct {
	Code   int32  `json:"code"`
	Msg    string `json:"msg"`
	Data   any    `json:"data,omitempty"`
	Origin string `json:"origin,omitempty"`
}

// Success data 可省略
func Success(c *gin.Context, data ...any) {
	body := ResponseBody{Code: http.StatusOK, Msg: "success"}
	if len(data) > 0 {
		body.Data = data[0]
	}
	c.JSON(http.StatusOK, body)
}

// Fail 非 *Error 的错误一律按 500 处理
func Fail(c *gin.Context, err error) {
	e, ok := err.(*Error)
	if !ok {
		e = ErrServerInternal.WithOrigin(err)
	}

	c.Set(ErrorContextKey, e)
	if e.HTTPStatus() >= http.StatusInternalServerError {
		sentry.CaptureException(c, e)
	}

	body := ResponseBody{Code: e.Code, Msg: e.Message}
	if config.Get().Mode == config.ModeDebug {
		body.Origin = e.Origin
	}
	c.AbortWithStatusJSON(e.HTTPStatus(), body)
}

// Recovery 在 defer 中调用，把 panic 转成 500
func Recovery(c *gin.Context) {
	r := recover()
	if r == nil {
		return
	}
	err, ok := r.(error)
	if !ok {
		err = fmt.Errorf("%v", r)
	}
	err = pkgerrors.WithStack(err)
	logger.WithContext(logger.New("Recovery"), c).Error("panic recovered",
		"error", err,
		"path", c.Request.URL.Path,
		"stack", fmt.Sprintf("%+v", err),
	)
	Fail(c, ErrServerInternal.WithOrigin(err))
}
