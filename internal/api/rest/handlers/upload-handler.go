package handlers

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/einkreativername/brightmiss/internal/helper"
	"github.com/einkreativername/brightmiss/internal/helper/utils"
	"github.com/einkreativername/brightmiss/internal/interfaces"
	pkgutils "github.com/einkreativername/brightmiss/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	maxImageSize = 4 * 1024 * 1024
	maxVideoSize = 16 * 1024 * 1024
	maxGallery   = 10
	maxVideos    = 5

	imageMaxWidth = 1600
	jpgQuality    = 85
)

var allowedImageExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}
var allowedVideoExt = map[string]bool{".mp4": true, ".mov": true, ".webm": true}

type UploadHandler struct {
	uploader interfaces.Uploader
}

func NewUploadHandler(uploader interfaces.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// POST /api/uploads/image
// form-data: file=<image>, one file, 4MB max
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.ResponseError(c, fiber.StatusBadRequest, "file is required")
	}

	url, err := h.uploadImageFile(c, file, "brightmiss/images")
	if err != nil {
		return utils.ResponseAppError(c, err)
	}
	return utils.ResponseSuccess(c, fiber.StatusOK, fiber.Map{"url": url})
}

// POST /api/uploads/gallery
// form-data: files=<image>..., up to 10 files, 4MB each
func (h *UploadHandler) UploadGallery(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return utils.ResponseError(c, fiber.StatusBadRequest, "files are required")
	}

	files := form.File["files"]
	if len(files) == 0 {
		return utils.ResponseError(c, fiber.StatusBadRequest, "files are required")
	}
	if len(files) > maxGallery {
		return utils.ResponseError(c, fiber.StatusBadRequest, "too many files (max 10)")
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := h.uploadImageFile(c, file, "brightmiss/gallery")
		if err != nil {
			return utils.ResponseAppError(c, err)
		}
		urls = append(urls, url)
	}
	return utils.ResponseSuccess(c, fiber.StatusOK, fiber.Map{"urls": urls})
}

// POST /api/uploads/video
// form-data: files=<video>..., up to 5 files, 16MB each
func (h *UploadHandler) UploadVideo(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return utils.ResponseError(c, fiber.StatusBadRequest, "files are required")
	}

	files := form.File["files"]
	if len(files) == 0 {
		return utils.ResponseError(c, fiber.StatusBadRequest, "files are required")
	}
	if len(files) > maxVideos {
		return utils.ResponseError(c, fiber.StatusBadRequest, "too many files (max 5)")
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedVideoExt[ext] {
			return utils.ResponseError(c, fiber.StatusBadRequest, "only mp4/mov/webm allowed")
		}
		if file.Size > maxVideoSize {
			return utils.ResponseError(c, fiber.StatusBadRequest, "file too large (max 16MB)")
		}

		b, err := readMultipart(file, maxVideoSize)
		if err != nil {
			return utils.ResponseError(c, fiber.StatusBadRequest, err.Error())
		}

		ctx, cancel := context.WithTimeout(c.Context(), 60*time.Second)
		url, err := h.uploader.UploadBytes(ctx, "brightmiss/videos", uuid.NewString()+ext, b)
		cancel()
		if err != nil {
			return utils.ResponseError(c, fiber.StatusInternalServerError, "upload failed")
		}
		urls = append(urls, url)
	}
	return utils.ResponseSuccess(c, fiber.StatusOK, fiber.Map{"urls": urls})
}

func (h *UploadHandler) uploadImageFile(c *fiber.Ctx, file *multipart.FileHeader, folder string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExt[ext] {
		return "", helper.Validation("only jpg/jpeg/png/webp allowed")
	}
	if file.Size > maxImageSize {
		return "", helper.Validation("file too large (max 4MB)")
	}

	b, err := readMultipart(file, maxImageSize)
	if err != nil {
		return "", helper.Validation(err.Error())
	}

	norm, err := pkgutils.NormalizeToJPG(b, imageMaxWidth, jpgQuality)
	if err != nil {
		return "", helper.Validation("invalid image")
	}

	ctx, cancel := context.WithTimeout(c.Context(), 20*time.Second)
	defer cancel()

	url, err := h.uploader.UploadBytes(ctx, folder, uuid.NewString()+".jpg", norm)
	if err != nil {
		return "", helper.Internal(err)
	}
	return url, nil
}

func readMultipart(file *multipart.FileHeader, max int64) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return pkgutils.ReadAllLimit(f, max)
}
