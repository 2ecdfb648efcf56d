package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadSize = 10 << 20 // 10MB

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}

// Upload stores an image and returns its public URL for use as a message
// attachment.
func Upload(ctx *gin.Context) {
	file, err := ctx.FormFile("image")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Image file required"})
		return
	}

	if file.Size > maxUploadSize {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Image must be under 10MB"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))

	if !allowedImageExtensions[ext] {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported image type"})
		return
	}

	dir := UploadDir()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("Failed to create upload directory: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	filename := uuid.NewString() + ext

	if err := ctx.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		log.Printf("Failed to save upload: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"url": "/uploads/" + filename})
}
