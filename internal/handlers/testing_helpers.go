package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"

	"github.com/labstack/echo/v4"
)

// NewTestContext creates a new Echo context for testing
func NewTestContext(method, path string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()

	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)

	return c, rec
}

// TestFile is one file part of a multipart test request.
type TestFile struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// NewMultipartRequest builds a multipart/form-data POST with the given fields and files.
func NewMultipartRequest(path string, fields map[string]string, files ...TestFile) *http.Request {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	for name, value := range fields {
		_ = mw.WriteField(name, value)
	}
	for _, f := range files {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Filename))
		if f.ContentType != "" {
			h.Set("Content-Type", f.ContentType)
		}
		part, _ := mw.CreatePart(h)
		_, _ = part.Write(f.Data)
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	return req
}

// NewMultipartContext creates an Echo context around NewMultipartRequest
func NewMultipartContext(path string, fields map[string]string, files ...TestFile) (echo.Context, *httptest.ResponseRecorder) {
	req := NewMultipartRequest(path, fields, files...)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetPath(path)
	return c, rec
}

// NewWebhookContext creates an Echo context carrying a raw webhook body and signature
func NewWebhookContext(payload []byte, signature string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/stripe-webhook", bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetPath("/api/stripe-webhook")
	return c, rec
}

// AssertJSONResponse checks if the response is valid JSON and returns the parsed body
func AssertJSONResponse(rec *httptest.ResponseRecorder) (map[string]interface{}, error) {
	var body map[string]interface{}
	if err := json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&body); err != nil {
		return nil, err
	}
	return body, nil
}

func newContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}
