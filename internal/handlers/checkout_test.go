package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"testing"

	"github.com/loganlanou/laserwood/internal/blob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripego "github.com/stripe/stripe-go/v80"
)

const fallbackOrigin = "https://nittanycraft.test"

func checkoutFields(original, processed []byte) map[string]string {
	return map[string]string{
		"originalImage":     base64.StdEncoding.EncodeToString(original),
		"processedImage":    base64.StdEncoding.EncodeToString(processed),
		"originalMimeType":  "image/jpeg",
		"processedMimeType": "image/png",
	}
}

func testSession() *stripego.CheckoutSession {
	return &stripego.CheckoutSession{ID: "cs_test_abc", URL: "https://checkout.stripe.com/c/pay/cs_test_abc"}
}

func TestCreateCheckout_NotConfigured(t *testing.T) {
	fields := checkoutFields([]byte("o"), []byte("p"))

	for name, h := range map[string]*CheckoutHandler{
		"no stripe": NewCheckoutHandler(nil, blob.NewMemoryStore(""), fallbackOrigin),
		"no store":  NewCheckoutHandler(&fakeCheckout{session: testSession()}, nil, fallbackOrigin),
	} {
		t.Run(name, func(t *testing.T) {
			c, rec := NewMultipartContext("/api/create-checkout", fields)
			require.NoError(t, h.CreateCheckout(c))
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Contains(t, rec.Body.String(), "not configured")
		})
	}
}

func TestCreateCheckout_MissingImages(t *testing.T) {
	tests := map[string]map[string]string{
		"no fields":         {},
		"missing original":  {"processedImage": "cHJvY2Vzc2Vk"},
		"missing processed": {"originalImage": "b3JpZ2luYWw="},
	}
	for name, fields := range tests {
		t.Run(name, func(t *testing.T) {
			store := blob.NewMemoryStore("")
			creator := &fakeCheckout{session: testSession()}
			h := NewCheckoutHandler(creator, store, fallbackOrigin)

			c, rec := NewMultipartContext("/api/create-checkout", fields)
			require.NoError(t, h.CreateCheckout(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			body, err := AssertJSONResponse(rec)
			require.NoError(t, err)
			assert.Equal(t, "Missing image data", body["error"])
			assert.Empty(t, store.Keys())
			assert.Zero(t, creator.calls)
		})
	}
}

func TestCreateCheckout_InvalidBase64(t *testing.T) {
	store := blob.NewMemoryStore("")
	creator := &fakeCheckout{session: testSession()}
	h := NewCheckoutHandler(creator, store, fallbackOrigin)

	c, rec := NewMultipartContext("/api/create-checkout", map[string]string{
		"originalImage":  "!!! not base64 !!!",
		"processedImage": "cHJvY2Vzc2Vk",
	})
	require.NoError(t, h.CreateCheckout(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.Keys())
	assert.Zero(t, creator.calls)
}

func TestCreateCheckout_Success(t *testing.T) {
	store := blob.NewMemoryStore("https://cdn.test")
	creator := &fakeCheckout{session: testSession()}
	h := NewCheckoutHandler(creator, store, fallbackOrigin)

	original := []byte("original jpeg")
	processed := testPNG(t, 8, 8)

	req := NewMultipartRequest("/api/create-checkout", checkoutFields(original, processed))
	req.Header.Set("Origin", "https://shop.example.com")
	c, rec := newContext(req)

	require.NoError(t, h.CreateCheckout(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CreateCheckoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "cs_test_abc", resp.SessionID)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_abc", resp.URL)

	keys := store.Keys()
	require.Len(t, keys, 2)
	assert.Regexp(t, regexp.MustCompile(`^temp/\d+-[0-9a-z]{7}/original\.jpeg$`), keys[0])
	assert.Regexp(t, regexp.MustCompile(`^temp/\d+-[0-9a-z]{7}/processed\.png$`), keys[1])
	assert.Equal(t, "https://cdn.test/"+keys[0], resp.ImageURLs.Original)
	assert.Equal(t, "https://cdn.test/"+keys[1], resp.ImageURLs.Processed)

	obj, ok := store.Get(keys[0])
	require.True(t, ok)
	assert.Equal(t, original, obj.Data)
	assert.Equal(t, "image/jpeg", obj.ContentType)
	obj, ok = store.Get(keys[1])
	require.True(t, ok)
	assert.Equal(t, processed, obj.Data)

	require.Equal(t, 1, creator.calls)
	assert.Equal(t, resp.ImageURLs.Original, creator.req.OriginalURL)
	assert.Equal(t, resp.ImageURLs.Processed, creator.req.ProcessedURL)
	assert.Equal(t, base64.StdEncoding.EncodeToString(original), creator.req.OriginalBase64)
	assert.Equal(t, "image/jpeg", creator.req.OriginalMimeType)
	assert.Equal(t, "image/png", creator.req.ProcessedMimeType)
	assert.Equal(t, "https://shop.example.com", creator.req.Origin)
}

func TestCreateCheckout_FallbackOriginAndMimeDefaults(t *testing.T) {
	store := blob.NewMemoryStore("")
	creator := &fakeCheckout{session: testSession()}
	h := NewCheckoutHandler(creator, store, fallbackOrigin)

	c, rec := NewMultipartContext("/api/create-checkout", map[string]string{
		"originalImage":  base64.StdEncoding.EncodeToString([]byte("o")),
		"processedImage": base64.StdEncoding.EncodeToString([]byte("p")),
	})
	require.NoError(t, h.CreateCheckout(c))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, fallbackOrigin, creator.req.Origin)
	assert.Equal(t, "image/png", creator.req.OriginalMimeType)
	assert.Regexp(t, `/original\.png$`, store.Keys()[0])
}

func TestCreateCheckout_DataURLAccepted(t *testing.T) {
	store := blob.NewMemoryStore("")
	h := NewCheckoutHandler(&fakeCheckout{session: testSession()}, store, fallbackOrigin)

	c, rec := NewMultipartContext("/api/create-checkout", map[string]string{
		"originalImage":  "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("o")),
		"processedImage": base64.RawStdEncoding.EncodeToString([]byte("pp")),
	})
	require.NoError(t, h.CreateCheckout(c))
	require.Equal(t, http.StatusOK, rec.Code)

	obj, ok := store.Get(store.Keys()[0])
	require.True(t, ok)
	assert.Equal(t, []byte("o"), obj.Data)
}

func TestCreateCheckout_StoreError(t *testing.T) {
	store := blob.NewMemoryStore("")
	store.Err = errors.New("bucket missing")
	creator := &fakeCheckout{session: testSession()}
	h := NewCheckoutHandler(creator, store, fallbackOrigin)

	c, rec := NewMultipartContext("/api/create-checkout", checkoutFields([]byte("o"), []byte("p")))
	require.NoError(t, h.CreateCheckout(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Zero(t, creator.calls)

	body, err := AssertJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, "Failed to create checkout session", body["error"])
	assert.Equal(t, "bucket missing", body["details"])
}

func TestCreateCheckout_ProcessorErrorKeepsImages(t *testing.T) {
	store := blob.NewMemoryStore("")
	creator := &fakeCheckout{err: errors.New("card payments not enabled")}
	h := NewCheckoutHandler(creator, store, fallbackOrigin)

	c, rec := NewMultipartContext("/api/create-checkout", checkoutFields([]byte("o"), []byte("p")))
	require.NoError(t, h.CreateCheckout(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "card payments not enabled")
	assert.Len(t, store.Keys(), 2)
}

func TestDecodeBase64(t *testing.T) {
	want := []byte("engraving")
	for _, in := range []string{
		base64.StdEncoding.EncodeToString(want),
		base64.RawStdEncoding.EncodeToString(want),
		"data:image/png;base64," + base64.StdEncoding.EncodeToString(want),
		"ZW5n\ncmF2\r\naW5n",
	} {
		got, err := decodeBase64(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := decodeBase64("%%%")
	assert.Error(t, err)
}
