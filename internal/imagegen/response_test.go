package imagegen

import (
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstImage_ReturnsFirstInlinePart(t *testing.T) {
	resp := &Response{Parts: []Part{
		{Text: "Here is your engraving"},
		{InlineData: &InlineData{MimeType: "image/jpeg", Data: []byte("first")}},
		{InlineData: &InlineData{MimeType: "image/png", Data: []byte("second")}},
	}}

	img, ok := resp.FirstImage()
	require.True(t, ok)
	assert.Equal(t, "image/jpeg", img.MimeType)
	assert.Equal(t, []byte("first"), img.Data)
}

func TestFirstImage_DefaultsMimeType(t *testing.T) {
	resp := &Response{Parts: []Part{{InlineData: &InlineData{Data: []byte{1, 2, 3}}}}}

	img, ok := resp.FirstImage()
	require.True(t, ok)
	assert.Equal(t, DefaultMimeType, img.MimeType)
	assert.Empty(t, resp.Parts[0].InlineData.MimeType, "the reply itself must not be mutated")
}

func TestFirstImage_TextOnly(t *testing.T) {
	resp := &Response{Parts: []Part{{Text: "I can only describe images."}}}

	_, ok := resp.FirstImage()
	assert.False(t, ok)

	var nilResp *Response
	_, ok = nilResp.FirstImage()
	assert.False(t, ok)
}

func TestTextPreview(t *testing.T) {
	resp := &Response{Parts: []Part{{Text: strings.Repeat("a", 150)}, {Text: strings.Repeat("é", 150)}}}

	preview := resp.TextPreview(200)
	assert.Equal(t, 200, len([]rune(preview)))
	assert.True(t, strings.HasPrefix(preview, strings.Repeat("a", 150)))

	short := &Response{Parts: []Part{{Text: "short"}}}
	assert.Equal(t, "short", short.TextPreview(200))
}

func TestFromGenai(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{
				genai.Text("rendered"),
				genai.Blob{MIMEType: "image/png", Data: []byte("png-bytes")},
			}}},
			{Content: &genai.Content{Parts: []genai.Part{
				genai.Blob{MIMEType: "image/png", Data: []byte("ignored")},
			}}},
		},
	}

	out := fromGenai(resp)
	require.Len(t, out.Parts, 2)
	assert.Equal(t, "rendered", out.Text())

	img, ok := out.FirstImage()
	require.True(t, ok)
	assert.Equal(t, []byte("png-bytes"), img.Data)
}

func TestFromGenai_Empty(t *testing.T) {
	assert.Empty(t, fromGenai(nil).Parts)
	assert.Empty(t, fromGenai(&genai.GenerateContentResponse{}).Parts)
	assert.Empty(t, fromGenai(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}).Parts)
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(t.Context(), "", "")
	assert.Error(t, err)
}
