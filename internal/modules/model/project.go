package model

import (
	"time"

	"github.com/google/uuid"
)

// Project is a downstream engine project that assets are routed into. The
// engine root path is unique among live projects.
type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	EnginePath  string    `gorm:"type:text;not null;uniqueIndex:u_projects_engine_path,where:is_deleted = false" json:"engine_path"`
	IsDeleted   bool      `gorm:"not null;default:false" json:"is_deleted"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Project) TableName() string { return "projects" }

type ProjectAsset struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:u_project_asset,priority:1;index" json:"project_id"`
	AssetID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:u_project_asset,priority:2;index" json:"asset_id"`
	ImportName string    `gorm:"type:text;not null" json:"import_name"`
	ImportPath string    `gorm:"type:text;not null" json:"import_path"`
	IsOriginal bool      `gorm:"not null;default:true" json:"is_original"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// ProjectAsset <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// ProjectAsset <-> Asset
	Asset *Asset `gorm:"foreignKey:AssetID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (ProjectAsset) TableName() string { return "project_assets" }
