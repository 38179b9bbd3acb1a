package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const MaxUploadSize = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Upload stores a single "image" field and returns its public URL.
func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize+1<<20)

	fh, err := c.FormFile("image")
	if err != nil {
		badRequest(c, "image", "Nenhuma imagem enviada")
		return
	}
	if fh.Size > MaxUploadSize {
		badRequest(c, "image", "Imagem maior que 5 MB")
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.fail(c, err)
		return
	}
	head := make([]byte, 512)
	n, _ := f.Read(head)
	_ = f.Close()

	contentType := http.DetectContentType(head[:n])
	ext, ok := imageExtensions[contentType]
	if !ok {
		badRequest(c, "image", "Apenas arquivos de imagem são permitidos")
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		h.fail(c, err)
		return
	}
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), strings.SplitN(uuid.NewString(), "-", 2)[0], ext)
	if err := c.SaveUploadedFile(fh, filepath.Join(h.uploadDir, name)); err != nil {
		h.fail(c, err)
		return
	}

	h.log.Info("image uploaded", zap.String("file", name), zap.Int64("size", fh.Size))
	c.JSON(http.StatusOK, gin.H{"imageUrl": h.publicBaseURL + "/uploads/" + name})
}
