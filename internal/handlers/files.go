package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"property-management/internal/dto"
)

// File endpoints manage attachment metadata only.

func (h *Handler) CreateFile(c *gin.Context) {
	var in dto.FileInput
	if !bindJSON(c, &in) {
		return
	}
	if !h.checkRefs(c, in.PropertyID.Ptr(), in.TenantID.Ptr()) {
		return
	}

	f := in.ToModel()
	if err := h.store.Files.Create(c.Request.Context(), f); err != nil {
		h.fail(c, err, "File")
		return
	}
	c.JSON(http.StatusOK, dto.NewFileResponse(f))
}

func (h *Handler) ListFiles(c *gin.Context) {
	opts, ok := listOptions(c)
	if !ok {
		return
	}
	opts.Status = ""
	fs, err := h.store.Files.List(c.Request.Context(), opts)
	if err != nil {
		h.fail(c, err, "File")
		return
	}
	c.JSON(http.StatusOK, dto.NewFileList(fs))
}

func (h *Handler) GetFile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	f, err := h.store.Files.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "File")
		return
	}
	c.JSON(http.StatusOK, dto.NewFileResponse(f))
}

func (h *Handler) ReplaceFile(c *gin.Context) {
	h.updateFile(c, false)
}

func (h *Handler) PatchFile(c *gin.Context) {
	h.updateFile(c, true)
}

func (h *Handler) updateFile(c *gin.Context, partial bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in dto.FileUpdate
	if !bindJSON(c, &in) {
		return
	}

	fields := in.Fields(partial)
	propertyID, tenantID := refsFromFields(fields)
	if !h.checkRefs(c, propertyID, tenantID) {
		return
	}
	f, err := h.store.Files.UpdateFields(c.Request.Context(), id, fields)
	if err != nil {
		h.fail(c, err, "File")
		return
	}
	c.JSON(http.StatusOK, dto.NewFileResponse(f))
}

func (h *Handler) DeleteFile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.store.Files.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "File")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: fmt.Sprintf("File %d deleted successfully", id)})
}
