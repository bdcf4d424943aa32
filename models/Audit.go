package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog keeps before/after snapshots of booking mutations so a
// dispute ("my slot disappeared") can be traced to a specific action.
type AuditLog struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	ActorUserID  uint           `json:"actorUserId" gorm:"index"` // zero for customer actions
	BusinessID   uint           `json:"businessId" gorm:"index"`
	Action       string         `json:"action" gorm:"size:64;index"`
	ResourceType string         `json:"resourceType" gorm:"size:64;index"`
	ResourceID   uint           `json:"resourceId" gorm:"index"`
	Before       datatypes.JSON `json:"before" gorm:"type:jsonb"`
	After        datatypes.JSON `json:"after" gorm:"type:jsonb"`
	IPAddress    string         `json:"ipAddress" gorm:"size:64"`
	CreatedAt    time.Time      `json:"createdAt"`
}
