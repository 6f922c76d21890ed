package models

import "time"

// AppSetting is one admin-configurable key/value pair. Missing keys are
// created lazily with their default value on first read.
type AppSetting struct {
	Key       string    `json:"key" gorm:"primaryKey;type:varchar(80)"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
