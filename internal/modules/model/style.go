package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StyleMigration links a styled variant asset back to the original it was
// derived from. Immutable once created; one original may have many variants.
type StyleMigration struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	OriginalAssetID uuid.UUID         `gorm:"type:uuid;not null;index" json:"original_asset_id"`
	StyledAssetID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"styled_asset_id"`
	StyleTag        string            `gorm:"type:text;not null;index" json:"style_tag"`
	ProjectID       *uuid.UUID        `gorm:"type:uuid;index" json:"project_id,omitempty"`
	Meta            datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"meta,omitempty"`
	CreatedBy       string            `gorm:"type:text;not null" json:"created_by"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// StyleMigration <-> Asset (weak references; never mutated from here)
	OriginalAsset *Asset `gorm:"foreignKey:OriginalAssetID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
	StyledAsset   *Asset `gorm:"foreignKey:StyledAssetID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (StyleMigration) TableName() string { return "style_migrations" }
