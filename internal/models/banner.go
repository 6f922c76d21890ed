package models

import (
	"time"

	"gorm.io/datatypes"
)

// BannerElement is one positioned block inside the visual banner editor.
type BannerElement struct {
	Kind     string  `json:"kind"` // "text" or "image"
	Text     string  `json:"text,omitempty"`
	Image    string  `json:"image,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	FontSize int     `json:"fontSize,omitempty"`
	Color    string  `json:"color,omitempty"`
}

// Banner is a homepage banner. MediaType discriminates MediaURL between an
// image and a video; DisplayOrder drives the sort on the active list.
type Banner struct {
	ID           uint                               `json:"id" gorm:"primaryKey"`
	Title        string                             `json:"title,omitempty"`
	Text         string                             `json:"text,omitempty"`
	MediaURL     string                             `json:"mediaUrl" validate:"required"`
	MediaType    string                             `json:"mediaType" gorm:"type:varchar(10)" validate:"required,oneof=image video"`
	DisplayOrder int                                `json:"displayOrder"`
	Active       bool                               `json:"active"`
	Position     string                             `json:"position,omitempty" validate:"omitempty,oneof=left center right"`
	Animation    string                             `json:"animation,omitempty" validate:"omitempty,oneof=none fade slide zoom"`
	Overlay      string                             `json:"overlay,omitempty" validate:"omitempty,oneof=none light dark gradient"`
	Elements     datatypes.JSONSlice[BannerElement] `json:"elements"`
	CreatedAt    time.Time                          `json:"createdAt"`
	UpdatedAt    time.Time                          `json:"updatedAt"`
}
