package api

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/beka-birhanu/vinom-backrooms/api/identity"
	"github.com/gin-gonic/gin"
)

const redacted = "REDACTED"

// accessLogFormatter is gin's default access log line with query tokens redacted.
func accessLogFormatter(param gin.LogFormatterParams) string {
	var statusColor, methodColor, resetColor string
	if param.IsOutputColor() {
		statusColor = param.StatusCodeColor()
		methodColor = param.MethodColor()
		resetColor = param.ResetColor()
	}

	if param.Latency > time.Minute {
		param.Latency = param.Latency.Truncate(time.Second)
	}

	return fmt.Sprintf("[GIN] %v |%s %3d %s| %13v | %15s |%s %-7s %s %#v\n%s",
		param.TimeStamp.Format("2006/01/02 - 15:04:05"),
		statusColor, param.StatusCode, resetColor,
		param.Latency,
		param.ClientIP,
		methodColor, param.Method, resetColor,
		redactToken(param.Path),
		param.ErrorMessage,
	)
}

// redactToken masks the access token query parameter of a logged path.
// A query that does not parse is dropped altogether.
func redactToken(path string) string {
	base, rawQuery, ok := strings.Cut(path, "?")
	if !ok {
		return path
	}

	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return base
	}
	if !query.Has(identity.TokenQueryParam) {
		return path
	}
	query.Set(identity.TokenQueryParam, redacted)
	return base + "?" + query.Encode()
}
