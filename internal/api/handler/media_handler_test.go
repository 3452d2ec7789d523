package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/chouchef/chouchef-api/internal/core/domain"
	"github.com/chouchef/chouchef-api/internal/infrastructure/storage"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newMultipartContext(t *testing.T, e *echo.Echo, target, field, filename, mimeType string, data []byte) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if field != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
		if mimeType != "" {
			h.Set("Content-Type", mimeType)
		}
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestMediaHandler_DetectText(t *testing.T) {
	e := newTestEcho()
	detector := &stubDetector{text: "2 pommes\n1 baguette"}
	handler := NewMediaHandler(detector, nil, 1<<20, zerolog.Nop())

	c, rec := newMultipartContext(t, e, "/detectText", "image", "ticket.png", "image/png", pngHeader)
	if err := handler.DetectText(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["detections"] != "2 pommes\n1 baguette" {
		t.Fatalf("unexpected detections: %q", resp["detections"])
	}
	if detector.gotMime != "image/png" || detector.gotLen != len(pngHeader) {
		t.Fatalf("unexpected detector input: %q %d", detector.gotMime, detector.gotLen)
	}
}

func TestMediaHandler_DetectText_SniffsMissingType(t *testing.T) {
	e := newTestEcho()
	detector := &stubDetector{text: "ok"}
	handler := NewMediaHandler(detector, nil, 1<<20, zerolog.Nop())

	c, _ := newMultipartContext(t, e, "/detectText", "image", "ticket", "", pngHeader)
	if err := handler.DetectText(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if detector.gotMime != "image/png" {
		t.Fatalf("expected sniffed image/png, got %q", detector.gotMime)
	}
}

func TestMediaHandler_DetectText_NoFile(t *testing.T) {
	e := newTestEcho()
	detector := &stubDetector{}
	handler := NewMediaHandler(detector, nil, 1<<20, zerolog.Nop())

	c, _ := newMultipartContext(t, e, "/detectText", "", "", "", nil)
	if code := httpCode(t, handler.DetectText(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if detector.gotLen != 0 {
		t.Fatalf("detector must not be called")
	}
}

func TestMediaHandler_DetectText_TooLarge(t *testing.T) {
	e := newTestEcho()
	handler := NewMediaHandler(&stubDetector{}, nil, 4, zerolog.Nop())

	c, _ := newMultipartContext(t, e, "/detectText", "image", "ticket.png", "image/png", pngHeader)
	if code := httpCode(t, handler.DetectText(c)); code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", code)
	}
}

func TestMediaHandler_DetectText_DetectorFailure(t *testing.T) {
	e := newTestEcho()
	handler := NewMediaHandler(&stubDetector{err: domain.ErrTextDetection}, nil, 1<<20, zerolog.Nop())

	c, _ := newMultipartContext(t, e, "/detectText", "image", "ticket.png", "image/png", pngHeader)
	if err := handler.DetectText(c); !errors.Is(err, domain.ErrTextDetection) {
		t.Fatalf("expected ErrTextDetection, got %v", err)
	}
}

func TestMediaHandler_UploadThenGet(t *testing.T) {
	e := newTestEcho()
	images := storage.NewImageStoreFs(afero.NewMemMapFs())
	handler := NewMediaHandler(nil, images, 1<<20, zerolog.Nop())

	c, rec := newMultipartContext(t, e, "/upload", "file", "../../etc/pomme.png", "image/png", pngHeader)
	if err := handler.Upload(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["name"] != "pomme.png" {
		t.Fatalf("expected sanitized name pomme.png, got %q", resp["name"])
	}

	c, rec = newJSONContext(e, http.MethodGet, "/image/pomme.png", "", "imageName", "pomme.png")
	if err := handler.GetImage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "image/png") {
		t.Fatalf("expected image/png, got %q", ct)
	}
	if !bytes.Equal(rec.Body.Bytes(), pngHeader) {
		t.Fatalf("unexpected image bytes")
	}
}

func TestMediaHandler_Upload_NoFile(t *testing.T) {
	e := newTestEcho()
	handler := NewMediaHandler(nil, storage.NewImageStoreFs(afero.NewMemMapFs()), 1<<20, zerolog.Nop())

	c, _ := newMultipartContext(t, e, "/upload", "", "", "", nil)
	if code := httpCode(t, handler.Upload(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestMediaHandler_GetImage_NotFound(t *testing.T) {
	e := newTestEcho()
	handler := NewMediaHandler(nil, storage.NewImageStoreFs(afero.NewMemMapFs()), 1<<20, zerolog.Nop())

	c, _ := newJSONContext(e, http.MethodGet, "/image/ghost.png", "", "imageName", "ghost.png")
	if err := handler.GetImage(c); !errors.Is(err, domain.ErrImageNotFound) {
		t.Fatalf("expected ErrImageNotFound, got %v", err)
	}
}

func TestMediaHandler_DetectText_NotConfigured(t *testing.T) {
	e := newTestEcho()
	handler := NewMediaHandler(nil, nil, 1<<20, zerolog.Nop())

	c, _ := newMultipartContext(t, e, "/detectText", "image", "ticket.png", "image/png", pngHeader)
	if err := handler.DetectText(c); !errors.Is(err, errNoDetector) {
		t.Fatalf("expected errNoDetector, got %v", err)
	}
}

func TestContentType(t *testing.T) {
	if got := contentType("a.jpg", nil); got != "image/jpeg" {
		t.Fatalf("expected image/jpeg, got %q", got)
	}
	if got := contentType("noext", pngHeader); got != "image/png" {
		t.Fatalf("expected sniffed image/png, got %q", got)
	}
}
