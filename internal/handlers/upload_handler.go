package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clipperroom/clipperroom-api/internal/assets"
	"github.com/clipperroom/clipperroom-api/internal/httperr"
)

const maxUploadBytes = 10 << 20 // 10 MiB

type UploadHandler struct {
	uploader *assets.Uploader
}

// NewUploadHandler wires the image upload endpoint. uploader may be nil
// when object storage is not configured; requests then get a 503.
func NewUploadHandler(uploader *assets.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

func (h *UploadHandler) UploadImage(c *gin.Context) {
	if h.uploader == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "uploads_disabled", "Image uploads are not configured.")
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Send the image in the 'image' form field.")
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		httperr.Write(c, http.StatusRequestEntityTooLarge, "image_too_large", "Image must be at most 10 MiB.")
		return
	}

	url, err := h.uploader.UploadImage(c.Request.Context(), file)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Could not process the uploaded image.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
