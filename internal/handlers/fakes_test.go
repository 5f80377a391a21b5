package handlers

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/loganlanou/laserwood/internal/email"
	"github.com/loganlanou/laserwood/internal/imagegen"
	"github.com/loganlanou/laserwood/internal/stripe"
	"github.com/stretchr/testify/require"
	stripego "github.com/stripe/stripe-go/v80"
)

type fakeGenerator struct {
	resp *imagegen.Response
	err  error

	calls    int
	prompt   string
	image    []byte
	mimeType string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, image []byte, mimeType string) (*imagegen.Response, error) {
	f.calls++
	f.prompt = prompt
	f.image = image
	f.mimeType = mimeType
	return f.resp, f.err
}

type fakeCheckout struct {
	session *stripego.CheckoutSession
	err     error

	calls int
	req   stripe.EngravingCheckout
}

func (f *fakeCheckout) CreateEngravingCheckout(_ context.Context, req stripe.EngravingCheckout) (*stripego.CheckoutSession, error) {
	f.calls++
	f.req = req
	return f.session, f.err
}

type recordingNotifier struct {
	mu     sync.Mutex
	calls  []*email.PurchaseData
	result email.SendResult
}

func (r *recordingNotifier) SendPurchaseNotification(_ context.Context, data *email.PurchaseData) email.SendResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, data)
	return r.result
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 7), uint8(y * 13), uint8(x ^ y), 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// noisyPNG encodes w x h pixels of seeded random noise, which PNG cannot compress much.
func noisyPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	rng := rand.New(rand.NewPCG(uint64(w), uint64(h)))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(rng.UintN(256)), uint8(rng.UintN(256)), uint8(rng.UintN(256)), 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
