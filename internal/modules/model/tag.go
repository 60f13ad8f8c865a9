package model

import (
	"time"

	"github.com/google/uuid"
)

type Tag struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"type:text;not null;uniqueIndex" json:"name"`
	Category    string  `gorm:"type:text;not null" json:"category"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	Color       *string `gorm:"type:text" json:"color,omitempty"`
	SortOrder   int     `gorm:"not null;default:0" json:"sort_order"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Tag) TableName() string { return "tags" }

// AssetTag joins assets to tags; the (asset, tag) pair is unique so repeated
// attaches are no-ops at the storage layer.
type AssetTag struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AssetID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:u_asset_tag,priority:1;index" json:"asset_id"`
	TagID     uint      `gorm:"not null;uniqueIndex:u_asset_tag,priority:2;index" json:"tag_id"`
	CreatedBy *string   `gorm:"type:text" json:"created_by,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// AssetTag <-> Asset
	Asset *Asset `gorm:"foreignKey:AssetID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// AssetTag <-> Tag
	Tag *Tag `gorm:"foreignKey:TagID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (AssetTag) TableName() string { return "asset_tags" }
