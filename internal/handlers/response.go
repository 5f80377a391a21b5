package handlers

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Error        string `json:"error"`
	Details      string `json:"details,omitempty"`
	Suggestion   string `json:"suggestion,omitempty"`
	TextResponse string `json:"textResponse,omitempty"`
}

func jsonError(c echo.Context, status int, message, details string) error {
	return c.JSON(status, ErrorResponse{Error: message, Details: details})
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}

// decodeBase64 accepts bare or data-URL base64, padded or not, with embedded whitespace.
func decodeBase64(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:") {
		if _, payload, ok := strings.Cut(s, ","); ok {
			s = payload
		}
	}
	s = strings.Join(strings.Fields(s), "")

	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}
	if raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "=")); rawErr == nil {
		return raw, nil
	}
	return nil, err
}
