package httpadapter

import (
	"context"
	"slices"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const corsAllowMethods = "GET,POST,DELETE,OPTIONS"
const corsAllowHeaders = "Content-Type," + slotHeader

// allowedOrigin returns the Access-Control-Allow-Origin value for origin, or
// "" when the origin is not allowed. No configured origins allows any.
func allowedOrigin(allow []string, origin string) string {
	if len(allow) == 0 || slices.Contains(allow, "*") {
		return "*"
	}
	if origin != "" && slices.Contains(allow, origin) {
		return origin
	}
	return ""
}

func applyCORSHeaders(ctx *app.RequestContext, allow []string) {
	origin := allowedOrigin(allow, string(ctx.GetHeader("Origin")))
	if origin == "" {
		return
	}
	ctx.Response.Header.Set("Access-Control-Allow-Origin", origin)
	if origin != "*" {
		ctx.Response.Header.Set("Vary", "Origin")
	}
	ctx.Response.Header.Set("Access-Control-Allow-Methods", corsAllowMethods)
	ctx.Response.Header.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	ctx.Response.Header.Set("Access-Control-Max-Age", "600")
}

func corsMiddleware(allow []string) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		applyCORSHeaders(ctx, allow)
		if string(ctx.Method()) == consts.MethodOptions {
			ctx.AbortWithStatus(consts.StatusNoContent)
			return
		}
		ctx.Next(c)
	}
}
