package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Asset is one distinct piece of binary content (image, audio) known to the
// catalog. Deduplicated by ContentDigest: at most one live row per digest,
// enforced by a partial unique index. Rows are soft-deleted, never removed.
type Asset struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string            `gorm:"type:text;not null" json:"name"`
	FilePath      string            `gorm:"type:text;not null" json:"file_path"`
	FileType      string            `gorm:"type:text;not null" json:"file_type"`
	SizeB         int64             `gorm:"column:size_bytes;not null" json:"size_bytes"`
	ContentDigest string            `gorm:"type:char(64);not null;uniqueIndex:u_assets_digest_live,where:is_deleted = false" json:"content_digest"`
	Width         *int              `gorm:"column:width" json:"width,omitempty"`
	Height        *int              `gorm:"column:height" json:"height,omitempty"`
	DurationMS    *int              `gorm:"column:duration_ms" json:"duration_ms,omitempty"`
	Meta          datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"meta,omitempty"`
	IsDeleted     bool              `gorm:"not null;default:false" json:"is_deleted"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Asset <-> Tag
	Tags []Tag `gorm:"many2many:asset_tags;" json:"tags,omitempty"`
}

func (Asset) TableName() string { return "assets" }
