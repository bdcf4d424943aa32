package utils

import (
	"encoding/json"
	"net"

	"github.com/ruzzidanali/smashit/models"
	"github.com/ruzzidanali/smashit/storage"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/datatypes"
)

// Audit records a booking mutation with before/after snapshots.
// Customer-initiated actions have no actor user id; the phone number
// inside the snapshot identifies them well enough for disputes.
func Audit(ctx iris.Context, businessID uint, action, resourceType string, resourceID uint, before interface{}, after interface{}) {
	var beforeJSON, afterJSON datatypes.JSON
	if before != nil {
		if b, err := json.Marshal(before); err == nil {
			beforeJSON = b
		}
	}
	if after != nil {
		if a, err := json.Marshal(after); err == nil {
			afterJSON = a
		}
	}

	var actorID uint
	if tok := jsonWT.Get(ctx); tok != nil {
		if at, ok := tok.(*AccessToken); ok {
			actorID = at.UserID
		}
	}

	entry := models.AuditLog{
		ActorUserID:  actorID,
		BusinessID:   businessID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Before:       beforeJSON,
		After:        afterJSON,
		IPAddress:    clientIP(ctx),
	}
	storage.DB.Create(&entry)
}

func clientIP(ctx iris.Context) string {
	if ip := ctx.GetHeader("X-Forwarded-For"); ip != "" {
		return ip
	}
	ip, _, _ := net.SplitHostPort(ctx.RemoteAddr())
	return ip
}
