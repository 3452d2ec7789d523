package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chouchef/chouchef-api/internal/api/metrics"
	"github.com/chouchef/chouchef-api/internal/core/ports"
)

// MediaHandler serves text detection, image upload and image retrieval.
type MediaHandler struct {
	detector ports.TextDetector
	images   ports.ImageStore
	maxBytes int64
	log      zerolog.Logger
}

func NewMediaHandler(detector ports.TextDetector, images ports.ImageStore, maxBytes int64, log zerolog.Logger) *MediaHandler {
	return &MediaHandler{detector: detector, images: images, maxBytes: maxBytes, log: log}
}

type detectTextResponse struct {
	Detections string `json:"detections"`
}

type uploadResponse struct {
	Message string `json:"message"`
	Name    string `json:"name"`
}

// DetectText transcribes the text found in the uploaded image.
//
// @Summary      Detect text in an image
// @Tags         media
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "Image to read"
// @Success      200    {object}  detectTextResponse
// @Failure      400    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /detectText [post]
func (h *MediaHandler) DetectText(c echo.Context) error {
	if h.detector == nil {
		return errNoDetector
	}

	data, mimeType, err := h.readUpload(c, "image", "no image provided")
	if err != nil {
		return err
	}

	start := time.Now()
	text, err := h.detector.DetectText(c.Request().Context(), data, mimeType)
	metrics.TextDetectionDuration.Observe(time.Since(start).Seconds())
	metrics.TextDetectionsTotal.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, detectTextResponse{Detections: text})
}

// Upload stores an image under its base name.
//
// @Summary      Upload an image
// @Tags         media
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Image to store"
// @Success      200   {object}  uploadResponse
// @Failure      400   {object}  map[string]string
// @Router       /upload [post]
func (h *MediaHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no file uploaded")
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}

	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	name, err := h.images.Save(fh.Filename, src)
	if err != nil {
		return err
	}

	metrics.ImagesUploadedTotal.Inc()
	h.log.Info().Str("image", name).Int64("size", fh.Size).Msg("image stored")
	return c.JSON(http.StatusOK, uploadResponse{Message: "File uploaded successfully", Name: name})
}

// GetImage streams a stored image back.
//
// @Summary      Get an image
// @Tags         media
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        imageName  path  string  true  "Image file name"
// @Success      200
// @Failure      404  {object}  map[string]string
// @Router       /image/{imageName} [get]
func (h *MediaHandler) GetImage(c echo.Context) error {
	name := c.Param("imageName")
	rc, err := h.images.Open(name)
	if err != nil {
		return err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, contentType(name, data), data)
}

func (h *MediaHandler) readUpload(c echo.Context, field, missing string) ([]byte, string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, missing)
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return nil, "", echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, missing)
	}

	mimeType := fh.Header.Get(echo.HeaderContentType)
	if mimeType == "" || mimeType == echo.MIMEOctetStream {
		mimeType = http.DetectContentType(data)
	}
	return data, mimeType, nil
}

// contentType picks a type from the extension and falls back to sniffing.
func contentType(name string, data []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}

var errNoDetector = errors.New("text detection is not configured")
