package models

import "time"

// File is attachment metadata only; the bytes live outside the database.
type File struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PropertyID *uint     `gorm:"index" json:"property_id"`
	TenantID   *uint     `gorm:"index" json:"tenant_id"`
	FileName   *string   `gorm:"size:255" json:"file_name"`
	FilePath   *string   `gorm:"type:text" json:"file_path"`
	FileType   *string   `gorm:"size:50" json:"file_type"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
