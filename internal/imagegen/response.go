package imagegen

import "strings"

// DefaultMimeType is assumed when the model returns image bytes without a media type.
const DefaultMimeType = "image/png"

// InlineData is raw image bytes returned by the model.
type InlineData struct {
	MimeType string
	Data     []byte
}

// Part is one content fragment of a model reply: text or an inline image.
type Part struct {
	Text       string
	InlineData *InlineData
}

// Response holds the ordered parts of the first candidate the model returned.
type Response struct {
	Parts []Part
}

// FirstImage returns the first inline image part in reply order.
func (r *Response) FirstImage() (*InlineData, bool) {
	if r == nil {
		return nil, false
	}
	for _, part := range r.Parts {
		if part.InlineData == nil {
			continue
		}
		img := *part.InlineData
		if img.MimeType == "" {
			img.MimeType = DefaultMimeType
		}
		return &img, true
	}
	return nil, false
}

// Text joins every text part of the reply.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range r.Parts {
		b.WriteString(part.Text)
	}
	return b.String()
}

// TextPreview returns at most n characters of the reply text.
func (r *Response) TextPreview(n int) string {
	runes := []rune(r.Text())
	if len(runes) <= n {
		return string(runes)
	}
	return string(runes[:n])
}
