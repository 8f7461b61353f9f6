package dto

import (
	"time"

	"property-management/internal/models"
)

// FileInput is attachment metadata; uploads are not accepted.
type FileInput struct {
	PropertyID Optional[uint]   `json:"property_id"`
	TenantID   Optional[uint]   `json:"tenant_id"`
	FileName   Optional[string] `json:"file_name" binding:"required,max=255"`
	FilePath   Optional[string] `json:"file_path"`
	FileType   Optional[string] `json:"file_type" binding:"omitempty,max=50"`
}

type FileUpdate struct {
	PropertyID Optional[uint]   `json:"property_id"`
	TenantID   Optional[uint]   `json:"tenant_id"`
	FileName   Optional[string] `json:"file_name" binding:"omitempty,max=255"`
	FilePath   Optional[string] `json:"file_path"`
	FileType   Optional[string] `json:"file_type" binding:"omitempty,max=50"`
}

func (in *FileUpdate) Fields(partial bool) map[string]interface{} {
	full := FileInput(*in)
	return full.Fields(partial)
}

func (in *FileInput) ToModel() *models.File {
	return &models.File{
		PropertyID: in.PropertyID.Ptr(),
		TenantID:   in.TenantID.Ptr(),
		FileName:   in.FileName.Ptr(),
		FilePath:   in.FilePath.Ptr(),
		FileType:   in.FileType.Ptr(),
	}
}

func (in *FileInput) Fields(partial bool) map[string]interface{} {
	fields := map[string]interface{}{}
	collect(fields, "property_id", in.PropertyID, partial, nil)
	collect(fields, "tenant_id", in.TenantID, partial, nil)
	collect(fields, "file_name", in.FileName, partial, nil)
	collect(fields, "file_path", in.FilePath, partial, nil)
	collect(fields, "file_type", in.FileType, partial, nil)
	return fields
}

type FileResponse struct {
	ID         uint       `json:"id"`
	PropertyID *uint      `json:"property_id"`
	TenantID   *uint      `json:"tenant_id"`
	FileName   *string    `json:"file_name"`
	FilePath   *string    `json:"file_path"`
	FileType   *string    `json:"file_type"`
	UploadedAt *time.Time `json:"uploaded_at"`
}

func NewFileResponse(f *models.File) FileResponse {
	return FileResponse{
		ID:         f.ID,
		PropertyID: f.PropertyID,
		TenantID:   f.TenantID,
		FileName:   f.FileName,
		FilePath:   f.FilePath,
		FileType:   f.FileType,
		UploadedAt: timePtr(f.UploadedAt),
	}
}

func NewFileList(fs []models.File) []FileResponse {
	out := make([]FileResponse, 0, len(fs))
	for i := range fs {
		out = append(out, NewFileResponse(&fs[i]))
	}
	return out
}
