package proof

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
)

// WorkOrder is what the workshop needs at the laser.
type WorkOrder struct {
	OrderID       string
	CustomerEmail string
	PlacedAt      time.Time
	AmountCents   int64
	Item          string
	// Engraving is the image to burn, in any decodable format.
	Engraving    []byte
	EngravingURL string
}

// WorkOrderPDF renders a single Letter page with the order details, the engraving
// image, and a QR code linking to the stored engraving.
func WorkOrderPDF(order WorkOrder) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle(fmt.Sprintf("Work Order %s", order.OrderID), true)
	pdf.AddPage()

	// Letter size is 215.9mm x 279.4mm
	const pageWidth = 215.9

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 12, "NITTANY CRAFT. Work Order", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	placed := order.PlacedAt
	if placed.IsZero() {
		placed = time.Now()
	}
	customer := order.CustomerEmail
	if customer == "" {
		customer = "not provided"
	}
	item := order.Item
	if item == "" {
		item = "Custom Laser Engraving"
	}

	pdf.SetFont("Helvetica", "", 12)
	for _, row := range [][2]string{
		{"Order", order.OrderID},
		{"Placed", placed.Format("2006-01-02 15:04 MST")},
		{"Customer", customer},
		{"Item", item},
		{"Amount", fmt.Sprintf("$%.2f", float64(order.AmountCents)/100)},
	} {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(30, 8, row[0]+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 8, row[1], "", 1, "L", false, 0, "")
	}

	top := pdf.GetY() + 8

	if len(order.Engraving) > 0 {
		pngData, err := toPNG(order.Engraving)
		if err != nil {
			return nil, fmt.Errorf("engraving image: %w", err)
		}

		// Keep the engraving clear of the QR code at the foot of the page.
		w, h := 140.0, 0.0
		if b := pngData.bounds; b.Dy()*140 > b.Dx()*150 {
			h = 150
			w = 150 * float64(b.Dx()) / float64(b.Dy())
		}
		x := (pageWidth - w) / 2
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("engraving", opts, bytes.NewReader(pngData.data))
		pdf.ImageOptions("engraving", x, top, w, h, false, opts, 0, "")
	}

	if order.EngravingURL != "" {
		qr, err := qrcode.Encode(order.EngravingURL, qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("failed to generate QR code: %w", err)
		}

		qrSize := 35.0
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qr))
		pdf.ImageOptions("qr", pageWidth-qrSize-15, 240, qrSize, qrSize, false, opts, 0, "")
		pdf.SetXY(15, 262)
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 5, "Scan for the full-resolution engraving file.", "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}
	return buf.Bytes(), nil
}

type encodedPNG struct {
	data   []byte
	bounds image.Rectangle
}

// toPNG re-encodes data as an 8-bit NRGBA PNG; gofpdf rejects 16-bit PNGs, which is what
// png.Encode writes for YCbCr (jpeg) and RGBA64 sources.
func toPNG(data []byte) (encodedPNG, error) {
	img, err := decodeBounded(data)
	if err != nil {
		return encodedPNG{}, err
	}
	b := img.Bounds()
	flat := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(flat, flat.Bounds(), img, b.Min, xdraw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, flat); err != nil {
		return encodedPNG{}, err
	}
	return encodedPNG{data: buf.Bytes(), bounds: flat.Bounds()}, nil
}
