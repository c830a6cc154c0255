package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const maxUploadBytes = 5 << 20

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var errUploadTooLarge = errors.New("file exceeds 5MB limit")
var errUploadBadType = errors.New("only jpeg, jpg, png, gif and webp images are allowed")

type UploadHandler struct {
	baseDir string
}

func NewUploadHandler(baseDir string) *UploadHandler {
	return &UploadHandler{baseDir: baseDir}
}

// saveImage stores the uploaded file under <baseDir>/<subdir> with a fresh
// name and returns the public path served by the static route.
func (h *UploadHandler) saveImage(file *multipart.FileHeader, subdir string) (string, error) {
	if file.Size > maxUploadBytes {
		return "", errUploadTooLarge
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", errUploadBadType
	}
	dir := filepath.Join(h.baseDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + ext
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, io.LimitReader(src, maxUploadBytes)); err != nil {
		return "", err
	}
	return "/uploads/" + subdir + "/" + name, nil
}

func (h *UploadHandler) UploadMotorImage(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "missing image file"))
	}
	path, err := h.saveImage(file, "motors")
	if err != nil {
		switch err {
		case errUploadTooLarge, errUploadBadType:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to store image"))
		}
	}
	return c.JSON(http.StatusCreated, map[string]string{"path": path})
}
