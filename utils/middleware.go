package utils

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// OwnerOnlyMiddleware runs after the JWT verifier on /api/admin
// routes. It rejects non-owner roles and stashes the tenant scope in
// the context so handlers never reach back into the token themselves.
func OwnerOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != "OWNER" {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"error": "forbidden", "message": "owner access required"})
		return
	}
	ctx.Values().Set("userID", claims.UserID)
	ctx.Values().Set("businessID", claims.BusinessID)
	ctx.Next()
}

// BusinessIDFromContext returns the tenant id set by
// OwnerOnlyMiddleware, or 0 when the request is unauthenticated.
func BusinessIDFromContext(ctx iris.Context) uint {
	if v, ok := ctx.Values().Get("businessID").(uint); ok {
		return v
	}
	return 0
}

// UserIDFromContext returns the authenticated owner's user id, or 0.
func UserIDFromContext(ctx iris.Context) uint {
	if v, ok := ctx.Values().Get("userID").(uint); ok {
		return v
	}
	return 0
}
