package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Route history action tags.
const (
	RouteActionCreate  = "create"
	RouteActionUpdate  = "update"
	RouteActionReplace = "replace"
	RouteActionDelete  = "delete"
)

// UnityRoute binds one asset to one engine slot (GUID + path). At most one
// active route may exist per engine GUID, enforced by a partial unique index.
// Every mutation appends exactly one RouteHistory row.
type UnityRoute struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AssetID            uuid.UUID `gorm:"type:uuid;not null;index" json:"asset_id"`
	ProjectID          uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	UnityGUID          string    `gorm:"column:unity_guid;type:text;not null;uniqueIndex:u_routes_guid_active,where:is_active = true;index" json:"unity_guid"`
	UnityPath          string    `gorm:"column:unity_path;type:text;not null" json:"unity_path"`
	UnityName          string    `gorm:"column:unity_name;type:text;not null" json:"unity_name"`
	OriginalImportPath string    `gorm:"type:text;not null" json:"original_import_path"`
	IsActive           bool      `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// UnityRoute <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (UnityRoute) TableName() string { return "unity_routes" }

// RouteHistory is the append-only audit trail of route mutations. Rows are
// never updated or deleted; the current route state is reconstructible by
// replaying them from the create event forward.
type RouteHistory struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	RouteID      uuid.UUID         `gorm:"type:uuid;not null;index:ix_route_history_route,priority:1" json:"route_id"`
	OldAssetID   *uuid.UUID        `gorm:"type:uuid" json:"old_asset_id,omitempty"`
	NewAssetID   *uuid.UUID        `gorm:"type:uuid" json:"new_asset_id,omitempty"`
	OldUnityPath *string           `gorm:"column:old_unity_path;type:text" json:"old_unity_path,omitempty"`
	NewUnityPath *string           `gorm:"column:new_unity_path;type:text" json:"new_unity_path,omitempty"`
	Action       string            `gorm:"type:text;not null;check:action IN ('create','update','replace','delete')" json:"action"`
	Meta         datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"meta,omitempty"`
	CreatedBy    string            `gorm:"type:text;not null" json:"created_by"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:ix_route_history_route,priority:2" json:"created_at"`

	// RouteHistory <-> UnityRoute
	Route *UnityRoute `gorm:"foreignKey:RouteID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (RouteHistory) TableName() string { return "route_history" }
