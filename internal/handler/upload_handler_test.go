package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func multipartImage(t *testing.T, field, filename string, size int) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(bytes.Repeat([]byte{0xAB}, size)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

func TestUploadMotorImage(t *testing.T) {
	dir := t.TempDir()
	h := NewUploadHandler(dir)
	e := echo.New()

	body, contentType := multipartImage(t, "image", "vario.jpg", 1024)
	req := httptest.NewRequest(http.MethodPost, "/api/upload/image", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()

	if err := h.UploadMotorImage(e.NewContext(req, rec)); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "/uploads/motors/") {
		t.Errorf("body missing public path: %s", rec.Body.String())
	}

	entries, err := os.ReadDir(filepath.Join(dir, "motors"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("stored files = %d, want 1", len(entries))
	}
	if filepath.Ext(entries[0].Name()) != ".jpg" {
		t.Errorf("stored name %q lost its extension", entries[0].Name())
	}
}

func TestUploadMotorImageRejectsBadRequests(t *testing.T) {
	h := NewUploadHandler(t.TempDir())
	e := echo.New()

	tests := []struct {
		name     string
		field    string
		filename string
		size     int
	}{
		{name: "wrong field name", field: "file", filename: "a.png", size: 64},
		{name: "disallowed extension", field: "image", filename: "script.svg", size: 64},
		{name: "no extension", field: "image", filename: "raw", size: 64},
		{name: "too large", field: "image", filename: "big.png", size: maxUploadBytes + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := multipartImage(t, tt.field, tt.filename, tt.size)
			req := httptest.NewRequest(http.MethodPost, "/api/upload/image", body)
			req.Header.Set(echo.HeaderContentType, contentType)
			rec := httptest.NewRecorder()

			if err := h.UploadMotorImage(e.NewContext(req, rec)); err != nil {
				t.Fatal(err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}
