package handler

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"

	"editorial/internal/storage"

	"github.com/gin-gonic/gin"
)

// MediaOpener opens stored files by their path relative to the media root.
type MediaOpener interface {
	Open(rel string) (*os.File, error)
}

type MediaHandler struct {
	files MediaOpener
}

func NewMediaHandler(files MediaOpener) *MediaHandler {
	return &MediaHandler{files: files}
}

// Download streams a stored file as an attachment.
func (h *MediaHandler) Download(c *gin.Context) {
	rel := c.Param("filepath")

	f, err := h.files.Open(rel)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, storage.ErrInvalidPath) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		respondError(c, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		respondError(c, err)
		return
	}

	name := path.Base(info.Name())
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	http.ServeContent(c.Writer, c.Request, name, info.ModTime(), f)
}
