package handlers

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/loganlanou/laserwood/internal/blob"
	"github.com/loganlanou/laserwood/internal/engraving"
	"github.com/loganlanou/laserwood/internal/imagegen"
	"golang.org/x/sync/errgroup"
)

// MaxUploadBytes bounds images sent for engraving.
const MaxUploadBytes = 10 << 20

const textPreviewLimit = 200

// Generator turns a photo into an engraving rendering.
type Generator interface {
	Generate(ctx context.Context, prompt string, image []byte, mimeType string) (*imagegen.Response, error)
}

type ImageHandler struct {
	generator Generator
	store     blob.Store
}

// NewImageHandler takes nil for any collaborator whose credentials are missing.
func NewImageHandler(generator Generator, store blob.Store) *ImageHandler {
	return &ImageHandler{
		generator: generator,
		store:     store,
	}
}

type ProcessImageResponse struct {
	Success           bool     `json:"success"`
	Image             string   `json:"image"`
	MimeType          string   `json:"mimeType"`
	OriginalImageURL  string   `json:"originalImageUrl,omitempty"`
	ProcessedImageURL string   `json:"processedImageUrl,omitempty"`
	Warnings          []string `json:"warnings,omitempty"`
}

// ProcessImage sends an uploaded photo to the image model and returns the engraving
// rendering. With saveImages=true both images are also stored; storage failures are
// reported as warnings and never fail the request.
func (h *ImageHandler) ProcessImage(c echo.Context) error {
	if h.generator == nil {
		return jsonError(c, http.StatusInternalServerError, "GEMINI_API_KEY is not configured. Please add it to your environment.", "")
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "No image file provided", "")
	}

	mimeType := fh.Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(mimeType, "image/") {
		return jsonError(c, http.StatusBadRequest, "File must be an image", "")
	}
	if fh.Size > MaxUploadBytes {
		return jsonError(c, http.StatusBadRequest, "File size must be less than 10MB", "")
	}

	original, err := readFormFile(fh)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "Failed to process image", err.Error())
	}

	ctx := c.Request().Context()

	resp, err := h.generator.Generate(ctx, engraving.Prompt, original, mimeType)
	if err != nil {
		slog.Error("image generation failed", "error", err, "filename", fh.Filename)
		return jsonError(c, http.StatusInternalServerError, "Failed to process image", err.Error())
	}

	processed, ok := resp.FirstImage()
	if !ok {
		slog.Warn("image model returned no image", "text_length", len(resp.Text()))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:        "Image generation not available with current model",
			Details:      "The model returned text instead of an image. Configure GEMINI_MODEL with a model that supports image output.",
			Suggestion:   "Check Google AI Studio for available image generation models.",
			TextResponse: resp.TextPreview(textPreviewLimit),
		})
	}

	result := ProcessImageResponse{
		Success:  true,
		Image:    base64.StdEncoding.EncodeToString(processed.Data),
		MimeType: processed.MimeType,
	}

	if c.FormValue("saveImages") == "true" {
		if h.store == nil {
			result.Warnings = append(result.Warnings, "image storage is not configured; images were not saved")
		} else {
			h.savePair(ctx, &result, c.FormValue("orderId"), fh.Filename, original, mimeType, processed)
		}
	}

	return c.JSON(http.StatusOK, result)
}

// savePair stores the original and processed images side by side under one stamp.
func (h *ImageHandler) savePair(ctx context.Context, result *ProcessImageResponse, orderID, filename string, original []byte, originalType string, processed *imagegen.InlineData) {
	stamp := blob.NewStamp()
	folder := blob.Folder(orderID)

	var originalObj, processedObj *blob.Object
	var g errgroup.Group
	g.Go(func() error {
		obj, err := h.store.Put(ctx, blob.ObjectKey(folder, "original", stamp, blob.ExtFromFilename(filename)), original, originalType)
		if err != nil {
			return fmt.Errorf("save original image: %w", err)
		}
		originalObj = obj
		return nil
	})
	g.Go(func() error {
		obj, err := h.store.Put(ctx, blob.ObjectKey(folder, "processed", stamp, "png"), processed.Data, processed.MimeType)
		if err != nil {
			return fmt.Errorf("save processed image: %w", err)
		}
		processedObj = obj
		return nil
	})
	// Wait only reports the first failure; each goroutine's outcome is read individually.
	_ = g.Wait()

	if originalObj != nil {
		result.OriginalImageURL = originalObj.URL
	} else {
		result.Warnings = append(result.Warnings, "failed to save original image")
	}
	if processedObj != nil {
		result.ProcessedImageURL = processedObj.URL
	} else {
		result.Warnings = append(result.Warnings, "failed to save processed image")
	}
	if len(result.Warnings) > 0 {
		slog.Warn("error saving images to blob storage", "order_id", orderID, "warnings", result.Warnings)
	}
}

type SaveImageResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// SaveImage stores one uploaded image and returns its public URL.
func (h *ImageHandler) SaveImage(c echo.Context) error {
	if h.store == nil {
		return jsonError(c, http.StatusInternalServerError, "Blob storage not configured. Add BLOB_READ_WRITE_TOKEN to environment variables.", "")
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "No image file provided", "")
	}

	mimeType := fh.Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(mimeType, "image/") {
		return jsonError(c, http.StatusBadRequest, "File must be an image", "")
	}

	data, err := readFormFile(fh)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "Failed to save image", err.Error())
	}

	key := blob.ObjectKey(blob.Folder(c.FormValue("orderId")), c.FormValue("type"), blob.NewStamp(), blob.ExtFromFilename(fh.Filename))

	obj, err := h.store.Put(c.Request().Context(), key, data, mimeType)
	if err != nil {
		slog.Error("error saving image", "error", err, "key", key)
		return jsonError(c, http.StatusInternalServerError, "Failed to save image", err.Error())
	}

	return c.JSON(http.StatusOK, SaveImageResponse{
		Success:  true,
		URL:      obj.URL,
		Filename: key,
		Size:     fh.Size,
	})
}
