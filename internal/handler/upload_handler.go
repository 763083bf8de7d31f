package handler

import (
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sitecms/internal/content"
	"go.uber.org/zap"
)

// UploadURLPrefix is where the router serves the upload directory.
const UploadURLPrefix = "/uploads"

const maxUploadSize = 20 << 20

// uploadExtensions lists the media types that may be stored, keyed by the
// extension the file keeps on disk. SVG is excluded because it can carry script.
var uploadExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".avif": "image/avif",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
}

// UploadMedia 处理后台媒体上传，返回可直接写入文档的 Media 引用。
func (a *API) UploadMedia(c *gin.Context) {
	if a.uploadDir == "" {
		respondError(c, http.StatusNotFound, "uploads are disabled")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "file is required")
		return
	}
	if file.Size > maxUploadSize {
		respondError(c, http.StatusBadRequest, "file is too large")
		return
	}

	// 只接受图片和视频，按文件内容判断类型
	ext, ok := uploadExtension(file)
	if !ok {
		respondError(c, http.StatusBadRequest, "only image and video files are allowed")
		return
	}

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		a.log(c).Error("create upload dir", zap.String("dir", a.uploadDir), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "upload failed")
		return
	}

	id := uuid.NewString()
	name := time.Now().Format("20060102") + "-" + id + ext
	if err := c.SaveUploadedFile(file, filepath.Join(a.uploadDir, name)); err != nil {
		a.log(c).Error("save upload", zap.String("name", name), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "upload failed")
		return
	}

	url := path.Join(UploadURLPrefix, name)
	respondOK(c, http.StatusCreated, content.Media{File: url, FileID: id, Thumbnail: url})
}

// uploadExtension sniffs the upload and returns the extension to store it
// under. The name's extension and the detected type must both be allowed
// and agree with each other.
func uploadExtension(file *multipart.FileHeader) (string, bool) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	want, ok := uploadExtensions[ext]
	if !ok {
		return "", false
	}

	src, err := file.Open()
	if err != nil {
		return "", false
	}
	defer src.Close()

	detected, err := mimetype.DetectReader(src)
	if err != nil || !detected.Is(want) {
		return "", false
	}
	return ext, true
}
